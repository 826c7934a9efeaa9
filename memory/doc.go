// Package memory exposes wazero linear memory as an ndcodec.Buffer.
//
// Arrays that live inside a WebAssembly module's memory can be decoded and
// encoded in place:
//
//	buf := memory.Wrap(mod.ExportedMemory("memory"))
//	arr := &codec.Array{Buf: buf, Descr: descr, Flags: codec.FlagAligned}
//	v, err := reg.Decode(ptr, arr)
//
// Wasm memory is little-endian, so on big-endian hosts arrays over it are
// swapped: leave FlagNotSwapped unset there.
package memory
