// Package codec reads and writes array elements stored in raw byte buffers.
//
// Every element type tag has a pair of element functions: Decode turns the
// bytes at an offset into a Go value, Encode turns a Go value into those
// bytes. The Registry holds one pair per tag, resolved once for the
// platform's integer and pointer widths.
//
// # Element Representation
//
//	Tag          Go value        Width
//	──────────────────────────────────────────
//	bool         bool            1
//	byte/ubyte   int8/uint8      1
//	short        int16/uint16    2
//	int, long,   int32/uint32    4 or 8 (Sizes)
//	longlong     or int64/uint64
//	float        float32         4
//	double       float64         8
//	cdouble      complex128      16 (real, imag)
//	string       string          Descr.Size
//	object       any             Sizes.Pointer (handle)
//	void         Tuple           Descr.Size (fields)
//
// longdouble, cfloat, clongdouble, datetime, timedelta and unicode have no
// element functions and report unsupported_type.
//
// # Byte Order and Alignment
//
// An Array is behaved when FlagAligned and FlagNotSwapped are both set.
// Behaved elements whose address is aligned are loaded and stored directly;
// all others are copied byte-wise with CopySwap, reversing the bytes when
// the array is not in native order.
//
// # Records
//
// Void elements with fields decode to a Tuple and encode from any slice
// with one value per field. Record traversal never modifies the caller's
// Array. Encoding a record is all-or-nothing: a failing field leaves the
// buffer and object references exactly as they were, and the error carries
// the field path:
//
//	[encode] unsupported_conversion at point.b: Go type chan int, element type double
//
// # Objects
//
// Object elements hold handles into a resource.Table. Each occupied slot
// owns one reference; overwriting a slot releases the previous value once.
// Decoding returns the boxed value without taking a reference.
//
// # Process-wide Registry
//
//	reg, err := codec.Init(codec.Config{Sizes: ndcodec.NativeSizes()})
//	fn, err := codec.FunctionsFor(codec.Double)
//
// Init builds the registry once; Default and FunctionsFor build it with
// native sizes if Init was never called.
package codec
