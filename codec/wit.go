package codec

import (
	"fmt"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/ndcodec/codec/internal/layout"
	"github.com/wippyai/ndcodec/errors"
)

// DescriptorFromWIT builds a descriptor from a WIT type. Numeric primitives
// and bool map to scalar tags sized for the registry's platform; records and
// tuples map to void descriptors laid out sequentially with natural
// alignment. Tuple fields are named f0, f1, ...
func (r *Registry) DescriptorFromWIT(t wit.Type) (*Descriptor, error) {
	return r.fromWIT(layout.NewCalculator(), t)
}

func (r *Registry) fromWIT(calc *layout.Calculator, t wit.Type) (*Descriptor, error) {
	switch typ := t.(type) {
	case wit.Bool:
		return r.NewScalar(Bool), nil
	case wit.S8:
		return r.NewScalar(Byte), nil
	case wit.U8:
		return r.NewScalar(UByte), nil
	case wit.S16:
		return r.NewScalar(Short), nil
	case wit.U16:
		return r.NewScalar(UShort), nil
	case wit.S32:
		return r.integerDescriptor(4, true)
	case wit.U32:
		return r.integerDescriptor(4, false)
	case wit.S64:
		return r.integerDescriptor(8, true)
	case wit.U64:
		return r.integerDescriptor(8, false)
	case wit.F32:
		return r.NewScalar(Float), nil
	case wit.F64:
		return r.NewScalar(Double), nil
	case *wit.TypeDef:
		return r.fromTypeDef(calc, typ)
	}
	return nil, errors.UnsupportedType(errors.PhaseParse, fmt.Sprintf("%T", t))
}

func (r *Registry) fromTypeDef(calc *layout.Calculator, td *wit.TypeDef) (*Descriptor, error) {
	var (
		names []string
		types []wit.Type
	)
	switch kind := td.Kind.(type) {
	case *wit.Record:
		for _, f := range kind.Fields {
			names = append(names, f.Name)
			types = append(types, f.Type)
		}
	case *wit.Tuple:
		for i, typ := range kind.Types {
			names = append(names, fmt.Sprintf("f%d", i))
			types = append(types, typ)
		}
	case wit.Type:
		return r.fromWIT(calc, kind)
	default:
		return nil, errors.UnsupportedType(errors.PhaseParse, fmt.Sprintf("%T", td.Kind))
	}

	info, err := calc.Calculate(td)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindUnsupportedType, err, "record layout")
	}

	fields := make([]Field, len(types))
	for i, typ := range types {
		fd, err := r.fromWIT(calc, typ)
		if err != nil {
			return nil, errors.WithPath(err, names[i])
		}
		fields[i] = Field{Name: names[i], Offset: info.Offsets[i], Descr: fd}
	}
	return &Descriptor{
		Tag:       Void,
		Fields:    fields,
		Size:      info.Size,
		Alignment: info.Align,
	}, nil
}

// integerDescriptor picks the first C integer category with the given width.
func (r *Registry) integerDescriptor(width int, signed bool) (*Descriptor, error) {
	candidates := []struct {
		signed, unsigned TypeTag
		size             int
	}{
		{Int, UInt, r.sizes.Int},
		{Long, ULong, r.sizes.Long},
		{LongLong, ULongLong, r.sizes.LongLong},
	}
	for _, c := range candidates {
		if c.size != width {
			continue
		}
		if signed {
			return r.NewScalar(c.signed), nil
		}
		return r.NewScalar(c.unsigned), nil
	}
	return nil, errors.SizeMismatch(errors.PhaseParse, "integer", width)
}
