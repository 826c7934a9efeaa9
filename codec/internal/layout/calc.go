package layout

import (
	"fmt"

	"github.com/wippyai/ndcodec/codec/internal/abi"
	"go.bytecodealliance.org/wit"
)

// Info describes the in-buffer layout of a fixed-size WIT type.
// Offsets holds one entry per record field or tuple element.
type Info struct {
	Offsets []int64
	Size    int64
	Align   int64
}

// Calculator computes layouts for the fixed-size subset of WIT: primitive
// numbers, bool, and records and tuples built from them.
type Calculator struct {
	cache map[*wit.TypeDef]Info
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[*wit.TypeDef]Info),
	}
}

func (c *Calculator) Calculate(t wit.Type) (Info, error) {
	switch typ := t.(type) {
	case wit.U8, wit.S8, wit.Bool:
		return Info{Size: 1, Align: 1}, nil
	case wit.U16, wit.S16:
		return Info{Size: 2, Align: 2}, nil
	case wit.U32, wit.S32, wit.F32:
		return Info{Size: 4, Align: 4}, nil
	case wit.U64, wit.S64, wit.F64:
		return Info{Size: 8, Align: 8}, nil
	case *wit.TypeDef:
		return c.calculateTypeDef(typ)
	default:
		return Info{}, fmt.Errorf("no fixed layout for %s", typeName(t))
	}
}

func (c *Calculator) calculateTypeDef(t *wit.TypeDef) (Info, error) {
	if cached, ok := c.cache[t]; ok {
		return cached, nil
	}

	var (
		info Info
		err  error
	)
	switch kind := t.Kind.(type) {
	case *wit.Record:
		types := make([]wit.Type, len(kind.Fields))
		for i, f := range kind.Fields {
			types[i] = f.Type
		}
		info, err = c.sequential(types)
	case *wit.Tuple:
		info, err = c.sequential(kind.Types)
	case wit.Type:
		info, err = c.Calculate(kind)
	default:
		err = fmt.Errorf("no fixed layout for %s", typeName(t))
	}
	if err != nil {
		return Info{}, err
	}

	c.cache[t] = info
	return info, nil
}

// sequential lays fields out in order, each at its natural alignment.
// The aggregate is aligned to its widest field and padded to a multiple of it.
func (c *Calculator) sequential(types []wit.Type) (Info, error) {
	if len(types) == 0 {
		return Info{Size: 0, Align: 1}, nil
	}

	offsets := make([]int64, len(types))
	maxAlign := int64(1)
	offset := int64(0)

	for i, typ := range types {
		fieldLayout, err := c.Calculate(typ)
		if err != nil {
			return Info{}, err
		}

		offset = abi.AlignTo(offset, fieldLayout.Align)
		offsets[i] = offset

		if fieldLayout.Align > maxAlign {
			maxAlign = fieldLayout.Align
		}

		offset += fieldLayout.Size
	}

	return Info{
		Size:    abi.AlignTo(offset, maxAlign),
		Align:   maxAlign,
		Offsets: offsets,
	}, nil
}

func typeName(t wit.Type) string {
	if td, ok := t.(*wit.TypeDef); ok {
		if td.Name != nil {
			return *td.Name
		}
		return fmt.Sprintf("%T", td.Kind)
	}
	return fmt.Sprintf("%T", t)
}
