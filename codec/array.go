package codec

import (
	"github.com/wippyai/ndcodec"
	"github.com/wippyai/ndcodec/codec/internal/abi"
	"github.com/wippyai/ndcodec/errors"
)

// Flags describe how the bytes of an array may be accessed.
type Flags uint8

const (
	// FlagAligned means elements sit at offsets that are multiples of
	// their natural alignment.
	FlagAligned Flags = 1 << iota
	// FlagNotSwapped means elements are stored in native byte order.
	FlagNotSwapped
)

const behaved = FlagAligned | FlagNotSwapped

// Array is the view of one array that the codecs read and write.
// Codecs never modify the Array they are given: record traversal works on
// per-field copies.
type Array struct {
	Buf   ndcodec.Buffer
	Descr *Descriptor
	Flags Flags

	// tx collects object slot reference changes while a record is staged.
	tx *txn
	// origin is the position of Buf[0] within the caller's buffer; non-zero
	// only for staged record copies.
	origin int64
}

// IsBehaved reports whether the array is both aligned and in native order.
func (a *Array) IsBehaved() bool {
	return a.Flags&behaved == behaved
}

func (a *Array) IsAligned() bool {
	return a.Flags&FlagAligned != 0
}

func (a *Array) IsNotSwapped() bool {
	return a.Flags&FlagNotSwapped != 0
}

// Tuple is the decoded form of a record element, one value per field in
// field order.
type Tuple []any

// fieldView returns a copy of a describing field f of the record at base.
// The copy is aligned when the field's absolute offset is a multiple of
// the record alignment.
func (a *Array) fieldView(f *Field, base, alignment int64) *Array {
	fa := *a
	fa.Descr = f.Descr
	if abi.IsAligned(a.origin+base+f.Offset, alignment) {
		fa.Flags |= FlagAligned
	} else {
		fa.Flags &^= FlagAligned
	}
	return &fa
}

// view returns n bytes at offset, reporting bounds failures in phase.
func (a *Array) view(offset int64, n int, phase errors.Phase) ([]byte, error) {
	b, err := a.Buf.Slice(offset, n)
	if err != nil {
		var e *errors.Error
		if errors.As(err, &e) && e.Phase != phase {
			cp := *e
			cp.Phase = phase
			return nil, &cp
		}
		return nil, err
	}
	return b, nil
}
