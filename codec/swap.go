package codec

import "fmt"

// CopySwap copies width bytes from src to dst, reversing their order when
// swap is set. It works at any alignment and tolerates dst and src sharing
// memory. width must be 2, 4 or 8.
func CopySwap(dst, src []byte, width int, swap bool) {
	switch width {
	case 2, 4, 8:
	default:
		panic(fmt.Sprintf("codec: CopySwap of width %d", width))
	}
	_ = dst[width-1]
	_ = src[width-1]

	if !swap {
		copy(dst[:width], src[:width])
		return
	}
	var tmp [8]byte
	copy(tmp[:width], src[:width])
	for i := 0; i < width; i++ {
		dst[i] = tmp[width-1-i]
	}
}
