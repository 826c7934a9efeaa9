package abi

import (
	"reflect"
)

// TypeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func TypeName(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}

// AlignTo rounds offset up to a multiple of align. align must be a power of
// two; 0 leaves offset unchanged.
func AlignTo(offset, align int64) int64 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// IsAligned reports whether offset is a multiple of align.
// Alignments of 0 or 1 accept every offset.
func IsAligned(offset, align int64) bool {
	if align <= 1 {
		return true
	}
	return offset%align == 0
}

// Sequence returns the elements of a slice or array value.
func Sequence(value any) ([]any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case []any:
		return v, true
	case string, []byte:
		return nil, false
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
