package ndcodec

import (
	"encoding/binary"
	"runtime"
	"unsafe"

	"github.com/wippyai/ndcodec/errors"
)

// Buffer is the raw backing store of an array, owned by the array engine.
type Buffer interface {
	// Slice returns a writable view of length bytes starting at offset.
	// Writes through the view land in the buffer.
	Slice(offset int64, length int) ([]byte, error)
	// Len returns the buffer size in bytes.
	Len() int64
}

// ByteBuffer adapts a Go byte slice to Buffer.
type ByteBuffer []byte

// Slice returns b[offset:offset+length].
func (b ByteBuffer) Slice(offset int64, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset+int64(length) > int64(len(b)) {
		return nil, errors.OutOfBounds(errors.PhaseDecode, offset, length, len(b))
	}
	return b[offset : offset+int64(length) : offset+int64(length)], nil
}

// Len returns len(b).
func (b ByteBuffer) Len() int64 {
	return int64(len(b))
}

// Sizes holds the native byte widths of the platform's C integer
// categories and of a pointer.
type Sizes struct {
	Int      int
	Long     int
	LongLong int
	Pointer  int
}

// NativeSizes reports the widths for the running platform.
// long is 4 bytes on windows (LLP64) and pointer-sized elsewhere.
func NativeSizes() Sizes {
	ptr := int(unsafe.Sizeof(uintptr(0)))
	long := ptr
	if runtime.GOOS == "windows" {
		long = 4
	}
	return Sizes{Int: 4, Long: long, LongLong: 8, Pointer: ptr}
}

var littleEndian = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

// LittleEndian reports whether the platform's native byte order is little-endian.
func LittleEndian() bool {
	return littleEndian
}
