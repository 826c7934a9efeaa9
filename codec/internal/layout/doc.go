// Package layout computes size, alignment and field offsets for WIT types
// that have a fixed in-buffer representation.
//
// # Layout Rules
//
//   - Primitives: size equals alignment (u8=1, u32=4, f64=8, etc.)
//   - Records and tuples: fields laid out sequentially with padding for
//     alignment; the aggregate aligns to its widest field
//   - Strings, lists, variants and resources have no fixed element layout
//     and are rejected
//
// # Usage
//
//	c := layout.NewCalculator()
//	info, err := c.Calculate(witType)
//	// info.Size, info.Align, info.Offsets
//
// This package is internal to the codec.
package layout
