package codec

import (
	"bytes"

	"github.com/wippyai/ndcodec/codec/internal/abi"
	"github.com/wippyai/ndcodec/errors"
)

// byteStringFunctions handles fixed-length byte strings whose length is
// the descriptor's element size. Decoding drops trailing NULs; encoding
// truncates to the element size and pads with NULs.
func byteStringFunctions() *Functions {
	return &Functions{
		Tag: String,
		Decode: func(offset int64, a *Array) (any, error) {
			b, err := a.view(offset, int(a.Descr.Size), errors.PhaseDecode)
			if err != nil {
				return nil, err
			}
			return string(bytes.TrimRight(b, "\x00")), nil
		},
		Encode: func(value any, offset int64, a *Array) error {
			if value == nil {
				return conversionError(value, String)
			}
			src := abi.Bytes(value)
			b, err := a.view(offset, int(a.Descr.Size), errors.PhaseEncode)
			if err != nil {
				return err
			}
			n := copy(b, src)
			clear(b[n:])
			return nil
		},
	}
}
