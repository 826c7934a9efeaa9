package codec

import (
	"github.com/wippyai/ndcodec"
	"github.com/wippyai/ndcodec/codec/internal/abi"
)

// Descriptor is the element type metadata of an array: its tag, element
// size and alignment in bytes, and for records the ordered fields.
type Descriptor struct {
	Fields    []Field
	Size      int64
	Alignment int64
	Tag       TypeTag
}

// Field is one named member of a record descriptor.
type Field struct {
	Descr  *Descriptor
	Name   string
	Offset int64
}

// HasFields reports whether d describes a record with at least one field.
func (d *Descriptor) HasFields() bool {
	return d != nil && len(d.Fields) > 0
}

// Field returns the field with the given name.
func (d *Descriptor) Field(name string) (Field, bool) {
	if d == nil {
		return Field{}, false
	}
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// NewScalar returns the descriptor of a fixed-width tag on a platform with
// the given sizes. Variable-width tags (string, void) get size 0.
func NewScalar(tag TypeTag, sizes ndcodec.Sizes) *Descriptor {
	size := elementWidth(tag, sizes)
	align := size
	if tag.IsComplex() {
		align = size / 2
	}
	if align == 0 {
		align = 1
	}
	return &Descriptor{Tag: tag, Size: size, Alignment: align}
}

// NewByteString returns the descriptor of a fixed-length byte string.
func NewByteString(n int64) *Descriptor {
	return &Descriptor{Tag: String, Size: n, Alignment: 1}
}

// NewRecord returns a record descriptor over fields at their given offsets.
// The record aligns to its widest field and its size is padded to that
// alignment. A field without a descriptor takes no space; decoding or
// encoding it fails with an invalid input error.
func NewRecord(fields ...Field) *Descriptor {
	align := int64(1)
	end := int64(0)
	for _, f := range fields {
		if f.Descr == nil {
			continue
		}
		if f.Descr.Alignment > align {
			align = f.Descr.Alignment
		}
		if e := f.Offset + f.Descr.Size; e > end {
			end = e
		}
	}
	return &Descriptor{
		Tag:       Void,
		Fields:    fields,
		Size:      abi.AlignTo(end, align),
		Alignment: align,
	}
}

// elementWidth returns the byte width of tag, 0 when it has none.
func elementWidth(tag TypeTag, sizes ndcodec.Sizes) int64 {
	switch tag {
	case Bool, Byte, UByte:
		return 1
	case Short, UShort:
		return 2
	case Int, UInt:
		return int64(sizes.Int)
	case Long, ULong:
		return int64(sizes.Long)
	case LongLong, ULongLong:
		return int64(sizes.LongLong)
	case Float:
		return 4
	case Double, Datetime, Timedelta:
		return 8
	case LongDouble:
		return 16
	case CFloat:
		return 8
	case CDouble:
		return 16
	case CLongDouble:
		return 32
	case Object:
		return int64(sizes.Pointer)
	}
	return 0
}
