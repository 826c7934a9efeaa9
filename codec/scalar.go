package codec

import (
	"unsafe"

	"github.com/wippyai/ndcodec/codec/internal/abi"
	"github.com/wippyai/ndcodec/errors"
)

type integer interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}

type scalar interface {
	integer | ~float32 | ~float64
}

// load reads a T from b. Behaved arrays whose bytes are actually aligned
// for T are read directly; everything else goes through CopySwap.
func load[T scalar](b []byte, a *Array) T {
	var v T
	n := int(unsafe.Sizeof(v))
	if n == 1 || (a.IsBehaved() && addrAligned(b, n)) {
		return *(*T)(unsafe.Pointer(&b[0]))
	}
	CopySwap(unsafe.Slice((*byte)(unsafe.Pointer(&v)), n), b, n, !a.IsNotSwapped())
	return v
}

func store[T scalar](b []byte, a *Array, v T) {
	n := int(unsafe.Sizeof(v))
	if n == 1 || (a.IsBehaved() && addrAligned(b, n)) {
		*(*T)(unsafe.Pointer(&b[0])) = v
		return
	}
	CopySwap(b, unsafe.Slice((*byte)(unsafe.Pointer(&v)), n), n, !a.IsNotSwapped())
}

func addrAligned(b []byte, n int) bool {
	return uintptr(unsafe.Pointer(&b[0]))%uintptr(n) == 0
}

func conversionError(value any, tag TypeTag) error {
	return errors.UnsupportedConversion(errors.PhaseEncode, abi.TypeName(value), tag.String(), value)
}

func integerFunctions[T integer](tag TypeTag) *Functions {
	var zero T
	n := int(unsafe.Sizeof(zero))
	signed := ^zero < 0
	return &Functions{
		Tag: tag,
		Decode: func(offset int64, a *Array) (any, error) {
			b, err := a.view(offset, n, errors.PhaseDecode)
			if err != nil {
				return nil, err
			}
			return load[T](b, a), nil
		},
		Encode: func(value any, offset int64, a *Array) error {
			bits, ok := abi.Integer(value, n*8, signed)
			if !ok {
				return conversionError(value, tag)
			}
			b, err := a.view(offset, n, errors.PhaseEncode)
			if err != nil {
				return err
			}
			store(b, a, T(bits))
			return nil
		},
	}
}

func floatFunctions[T ~float32 | ~float64](tag TypeTag) *Functions {
	var zero T
	n := int(unsafe.Sizeof(zero))
	return &Functions{
		Tag: tag,
		Decode: func(offset int64, a *Array) (any, error) {
			b, err := a.view(offset, n, errors.PhaseDecode)
			if err != nil {
				return nil, err
			}
			return load[T](b, a), nil
		},
		Encode: func(value any, offset int64, a *Array) error {
			f, ok := abi.Float(value)
			if !ok {
				return conversionError(value, tag)
			}
			b, err := a.view(offset, n, errors.PhaseEncode)
			if err != nil {
				return err
			}
			store(b, a, T(f))
			return nil
		},
	}
}

func boolFunctions() *Functions {
	return &Functions{
		Tag: Bool,
		Decode: func(offset int64, a *Array) (any, error) {
			b, err := a.view(offset, 1, errors.PhaseDecode)
			if err != nil {
				return nil, err
			}
			return b[0] != 0, nil
		},
		Encode: func(value any, offset int64, a *Array) error {
			v, ok := abi.Bool(value)
			if !ok {
				return conversionError(value, Bool)
			}
			b, err := a.view(offset, 1, errors.PhaseEncode)
			if err != nil {
				return err
			}
			if v {
				b[0] = 1
			} else {
				b[0] = 0
			}
			return nil
		},
	}
}

// complexFunctions handles cdouble: real part at +0, imaginary part at +8,
// each byte-swapped on its own.
func complexFunctions() *Functions {
	return &Functions{
		Tag: CDouble,
		Decode: func(offset int64, a *Array) (any, error) {
			b, err := a.view(offset, 16, errors.PhaseDecode)
			if err != nil {
				return nil, err
			}
			return complex(load[float64](b[:8], a), load[float64](b[8:], a)), nil
		},
		Encode: func(value any, offset int64, a *Array) error {
			c, ok := abi.Complex(value)
			if !ok {
				return conversionError(value, CDouble)
			}
			b, err := a.view(offset, 16, errors.PhaseEncode)
			if err != nil {
				return err
			}
			store(b[:8], a, real(c))
			store(b[8:], a, imag(c))
			return nil
		},
	}
}
