package codec

import (
	"math"

	"go.uber.org/zap"

	"github.com/wippyai/ndcodec/errors"
	"github.com/wippyai/ndcodec/resource"
)

// objectFunctions stores boxed Go values as handles into the registry's
// table. Each occupied slot owns one reference; overwriting a slot
// releases the reference it held.
func (r *Registry) objectFunctions() *Functions {
	width := r.sizes.Pointer
	return &Functions{
		Tag:    Object,
		Decode: func(offset int64, a *Array) (any, error) { return r.decodeObject(offset, a, width) },
		Encode: func(value any, offset int64, a *Array) error { return r.encodeObject(value, offset, a, width) },
	}
}

func (r *Registry) readHandle(b []byte, a *Array, width int, phase errors.Phase) (resource.Handle, error) {
	if width == 4 {
		return resource.Handle(load[uint32](b, a)), nil
	}
	v := load[uint64](b, a)
	if v > math.MaxUint32 {
		return 0, errors.InvalidHandle(phase, uint32(v))
	}
	return resource.Handle(v), nil
}

func (r *Registry) writeHandle(b []byte, a *Array, width int, h resource.Handle) {
	if width == 4 {
		store(b, a, uint32(h))
		return
	}
	store(b, a, uint64(h))
}

func (r *Registry) decodeObject(offset int64, a *Array, width int) (any, error) {
	b, err := a.view(offset, width, errors.PhaseDecode)
	if err != nil {
		return nil, err
	}
	h, err := r.readHandle(b, a, width, errors.PhaseDecode)
	if err != nil {
		return nil, err
	}
	if h == 0 {
		return nil, nil
	}
	v, ok := r.handles.Get(h)
	if !ok {
		return nil, errors.InvalidHandle(errors.PhaseDecode, uint32(h))
	}
	return v, nil
}

// encodeObject boxes value, stores its handle and releases the slot's
// previous handle. Encoding nil empties the slot. Inside a staged record
// the previous handle is released when the record commits. A slot whose
// handle is not live in the table is rejected and left as it was.
func (r *Registry) encodeObject(value any, offset int64, a *Array, width int) error {
	b, err := a.view(offset, width, errors.PhaseEncode)
	if err != nil {
		return err
	}
	prev, err := r.readHandle(b, a, width, errors.PhaseEncode)
	if err != nil {
		return err
	}
	if prev != 0 && r.handles.Refs(prev) == 0 {
		return errors.InvalidHandle(errors.PhaseEncode, uint32(prev))
	}

	var h resource.Handle
	if value != nil {
		h, err = r.handles.Acquire(value)
		if err != nil {
			return errors.Wrap(errors.PhaseEncode, errors.KindOperationFailed, err, "box object")
		}
	}

	r.writeHandle(b, a, width, h)

	if a.tx != nil {
		if h != 0 {
			a.tx.track(h)
		}
		a.tx.deferRelease(prev)
		return nil
	}
	if err := r.handles.Release(prev); err != nil {
		// prev was live above; another owner released it since.
		Logger().Warn("release previous object", zap.Uint32("handle", uint32(prev)), zap.Error(err))
	}
	return nil
}
