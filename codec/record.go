package codec

import (
	"github.com/wippyai/ndcodec"
	"github.com/wippyai/ndcodec/codec/internal/abi"
	"github.com/wippyai/ndcodec/errors"
)

func (r *Registry) recordFunctions() *Functions {
	return &Functions{
		Tag:    Void,
		Decode: r.decodeRecord,
		Encode: r.encodeRecord,
	}
}

// decodeRecord decodes every field of the record at offset into a Tuple.
func (r *Registry) decodeRecord(offset int64, a *Array) (any, error) {
	d := a.Descr
	if !d.HasFields() {
		return nil, errors.UnsupportedOperation(errors.PhaseDecode, "void element without fields")
	}

	out := make(Tuple, len(d.Fields))
	for i := range d.Fields {
		f := &d.Fields[i]
		v, err := r.Decode(offset+f.Offset, a.fieldView(f, offset, d.Alignment))
		if err != nil {
			return nil, errors.WithPath(err, f.Name)
		}
		out[i] = v
	}
	return out, nil
}

// encodeRecord writes a sequence of field values. The record is encoded
// into a scratch copy and committed only when every field succeeds, so a
// failure leaves both the buffer and the object references untouched.
func (r *Registry) encodeRecord(value any, offset int64, a *Array) error {
	d := a.Descr
	if !d.HasFields() {
		return errors.UnsupportedOperation(errors.PhaseEncode, "void element without fields")
	}
	items, ok := abi.Sequence(value)
	if !ok {
		return conversionError(value, Void)
	}
	if len(items) != len(d.Fields) {
		return errors.ArityMismatch(errors.PhaseEncode, len(d.Fields), len(items))
	}

	dst, err := a.view(offset, int(d.Size), errors.PhaseEncode)
	if err != nil {
		return err
	}

	tx := newTxn(r.handles, a.tx)
	staged := *a
	staged.Buf = ndcodec.ByteBuffer(append([]byte(nil), dst...))
	staged.tx = tx
	staged.origin = a.origin + offset

	for i := range d.Fields {
		f := &d.Fields[i]
		if err := r.Encode(items[i], f.Offset, staged.fieldView(f, 0, d.Alignment)); err != nil {
			tx.rollback()
			return errors.WithPath(err, f.Name)
		}
	}

	copy(dst, staged.Buf.(ndcodec.ByteBuffer))
	tx.commit()
	return nil
}
