package memory

import (
	"math"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/ndcodec"
	"github.com/wippyai/ndcodec/errors"
)

// Wrap adapts a wazero linear memory to ndcodec.Buffer.
func Wrap(mem api.Memory) ndcodec.Buffer {
	if mem == nil {
		return nil
	}
	return &Wrapper{Mem: mem}
}

// Wrapper is an ndcodec.Buffer over wazero linear memory.
type Wrapper struct {
	Mem api.Memory
}

// Slice returns a view into linear memory. The view aliases the memory, so
// writes through it are visible to the module. It is invalidated when the
// memory grows.
func (w *Wrapper) Slice(offset int64, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset > math.MaxUint32 || int64(length) > math.MaxUint32 {
		return nil, errors.OutOfBounds(errors.PhaseDecode, offset, length, int(w.Mem.Size()))
	}
	data, ok := w.Mem.Read(uint32(offset), uint32(length))
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseDecode, offset, length, int(w.Mem.Size()))
	}
	return data, nil
}

// Len returns the current memory size in bytes.
func (w *Wrapper) Len() int64 {
	return int64(w.Mem.Size())
}
