package codec_test

import (
	"github.com/wippyai/ndcodec"
	"github.com/wippyai/ndcodec/codec"
	"github.com/wippyai/ndcodec/resource"
)

var sizes64 = ndcodec.Sizes{Int: 4, Long: 8, LongLong: 8, Pointer: 8}

const (
	behaved   = codec.FlagAligned | codec.FlagNotSwapped
	swapped   = codec.FlagAligned
	unaligned = codec.FlagNotSwapped
)

func newRegistry(handles *resource.Table) (*codec.Registry, error) {
	return codec.NewRegistry(codec.Config{Sizes: sizes64, Handles: handles})
}

func newArray(d *codec.Descriptor, n int, flags codec.Flags) *codec.Array {
	return &codec.Array{
		Buf:   ndcodec.ByteBuffer(make([]byte, n)),
		Descr: d,
		Flags: flags,
	}
}

func bufBytes(a *codec.Array) []byte {
	return []byte(a.Buf.(ndcodec.ByteBuffer))
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[i] = b[len(b)-1-i]
	}
	return out
}
