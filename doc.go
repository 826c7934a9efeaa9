// Package ndcodec provides a typed element codec and a generic operator
// bridge for arrays whose elements live in a raw byte buffer owned by an
// external array engine.
//
// The library decodes the bytes at an offset into a Go value, or encodes a Go
// value into those bytes, honoring per-type width, native vs foreign byte
// order, alignment, record layouts, and the lifetime of references stored in
// the buffer. It also exposes a catalogue of cached arithmetic, comparison and
// method-call operations over opaque value handles for element-wise loops.
//
// # Architecture Overview
//
//	ndcodec/            Root package with the Buffer interface and platform Sizes
//	├── codec/          Element function registry, scalar/record/object codecs
//	├── dynop/          Dynamic operator bridge (operation handles, method calls)
//	│   └── gohost/     Operator resolution for native Go values
//	├── resource/       Reference-counted handle table for boxed values
//	├── memory/         wazero linear memory as a Buffer
//	├── errors/         Structured error types
//	└── cmd/elemdump/   Command line element inspector
//
// # Quick Start
//
//	reg, err := codec.Init(codec.Config{Sizes: ndcodec.NativeSizes()})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	arr := &codec.Array{
//	    Buf:   ndcodec.ByteBuffer(make([]byte, 64)),
//	    Descr: codec.NewScalar(codec.Double, ndcodec.NativeSizes()),
//	    Flags: codec.FlagAligned | codec.FlagNotSwapped,
//	}
//
//	if err := reg.Encode(3.5, 8, arr); err != nil {
//	    log.Fatal(err)
//	}
//	v, _ := reg.Decode(8, arr) // float64(3.5)
//
// # Byte Order and Alignment
//
// An array is behaved when its byte order is native and its elements are
// aligned. Behaved accesses use direct typed loads and stores; every other
// access goes through CopySwap, which works on any address.
//
// # Thread Safety
//
// The registry and operator bridge are process-wide, built once, and safe
// for concurrent use. The codecs do not lock individual elements: concurrent
// writes to the same offset are the caller's race to avoid.
package ndcodec
