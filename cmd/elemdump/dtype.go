package main

import (
	"fmt"
	"strconv"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/ndcodec"
	"github.com/wippyai/ndcodec/codec"
	"github.com/wippyai/ndcodec/errors"
)

// witPrimitives are the field types accepted by -fields.
var witPrimitives = map[string]wit.Type{
	"bool": wit.Bool{},
	"s8":   wit.S8{},
	"u8":   wit.U8{},
	"s16":  wit.S16{},
	"u16":  wit.U16{},
	"s32":  wit.S32{},
	"u32":  wit.U32{},
	"s64":  wit.S64{},
	"u64":  wit.U64{},
	"f32":  wit.F32{},
	"f64":  wit.F64{},
}

// parseType resolves a -type value: a tag name such as "double", or S<n>
// for an n-byte string.
func parseType(reg *codec.Registry, s string) (*codec.Descriptor, error) {
	if rest, ok := strings.CutPrefix(s, "S"); ok && rest != "" && strings.Trim(rest, "0123456789") == "" {
		n, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return nil, errors.ParseFailed("byte string length", err)
		}
		if n <= 0 {
			return nil, errors.InvalidInput(errors.PhaseParse, "byte string length must be positive")
		}
		return codec.NewByteString(n), nil
	}
	tag, ok := codec.LookupTag(strings.ToLower(s))
	if !ok {
		return nil, errors.UnsupportedType(errors.PhaseParse, s)
	}
	switch tag {
	case codec.Void:
		return nil, errors.InvalidInput(errors.PhaseParse, "void needs -fields")
	case codec.String:
		return nil, errors.InvalidInput(errors.PhaseParse, "string needs a length, use S<n>")
	}
	if _, err := reg.FunctionsFor(tag); err != nil {
		return nil, err
	}
	return reg.NewScalar(tag), nil
}

// parseFields turns "a:s32,b:f64" into a WIT record and lays it out.
func parseFields(reg *codec.Registry, s string) (*codec.Descriptor, error) {
	rec := &wit.Record{}
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		name, typ, ok := strings.Cut(strings.TrimSpace(part), ":")
		name, typ = strings.TrimSpace(name), strings.TrimSpace(typ)
		if !ok || name == "" {
			return nil, errors.InvalidInput(errors.PhaseParse, fmt.Sprintf("field %q: want name:type", part))
		}
		if seen[name] {
			return nil, errors.InvalidInput(errors.PhaseParse, fmt.Sprintf("duplicate field %q", name))
		}
		seen[name] = true
		wt, ok := witPrimitives[strings.ToLower(typ)]
		if !ok {
			return nil, errors.WithPath(errors.UnsupportedType(errors.PhaseParse, typ), name)
		}
		rec.Fields = append(rec.Fields, wit.Field{Name: name, Type: wt})
	}
	return reg.DescriptorFromWIT(&wit.TypeDef{Kind: rec})
}

// parseOrder maps -order to the not-swapped flag.
func parseOrder(s string) (codec.Flags, error) {
	native := ndcodec.LittleEndian()
	var notSwapped bool
	switch strings.ToLower(s) {
	case "", "native", "=":
		notSwapped = true
	case "swapped":
		notSwapped = false
	case "little", "<":
		notSwapped = native
	case "big", ">":
		notSwapped = !native
	default:
		return 0, errors.InvalidInput(errors.PhaseParse, fmt.Sprintf("unknown byte order %q", s))
	}
	if notSwapped {
		return codec.FlagNotSwapped, nil
	}
	return 0, nil
}

// alignedFlag reports FlagAligned when every element starting at offset
// lands on a multiple of the descriptor's alignment.
func alignedFlag(d *codec.Descriptor, offset int64) codec.Flags {
	if d.Alignment <= 1 || (offset%d.Alignment == 0 && d.Size%d.Alignment == 0) {
		return codec.FlagAligned
	}
	return 0
}

func describe(d *codec.Descriptor) string {
	if !d.HasFields() {
		if d.Tag == codec.String {
			return fmt.Sprintf("S%d", d.Size)
		}
		return d.Tag.String()
	}
	parts := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		parts[i] = fmt.Sprintf("%s:%s@%d", f.Name, describe(f.Descr), f.Offset)
	}
	return fmt.Sprintf("{%s} size=%d align=%d", strings.Join(parts, ", "), d.Size, d.Alignment)
}
