package gohost

import (
	"math"
	"math/big"
	"reflect"
)

// class orders the numeric tower; binary operations promote both operands
// to the higher class.
type class uint8

const (
	classOther class = iota
	classBool
	classInt
	classBig
	classFloat
	classComplex
	classString
)

func (c class) numeric() bool {
	return c >= classBool && c <= classComplex
}

// normalize maps a Go value onto the value model: ints become int64 (or
// *big.Int when they do not fit), floats float64, complexes complex128.
func normalize(v any) (any, class) {
	switch x := v.(type) {
	case nil:
		return nil, classOther
	case bool:
		return x, classBool
	case int64:
		return x, classInt
	case int:
		return int64(x), classInt
	case float64:
		return x, classFloat
	case complex128:
		return x, classComplex
	case string:
		return x, classString
	case *big.Int:
		if x == nil {
			return nil, classOther
		}
		return x, classBig
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), classBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), classInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u <= math.MaxInt64 {
			return int64(u), classInt
		}
		return new(big.Int).SetUint64(u), classBig
	case reflect.Float32, reflect.Float64:
		return rv.Float(), classFloat
	case reflect.Complex64, reflect.Complex128:
		return rv.Complex(), classComplex
	case reflect.String:
		return rv.String(), classString
	}
	return v, classOther
}

// promote normalizes both operands and converts them to their common
// numeric class. Booleans take part as integers.
func promote(a, b any) (x, y any, c class, ok bool) {
	x, ca := normalize(a)
	y, cb := normalize(b)
	if !ca.numeric() || !cb.numeric() {
		return x, y, max(ca, cb), false
	}
	c = max(ca, cb, classInt)
	return convert(x, c), convert(y, c), c, true
}

func convert(v any, c class) any {
	switch c {
	case classInt:
		return toInt(v)
	case classBig:
		return toBig(v)
	case classFloat:
		return toFloat(v)
	case classComplex:
		return toComplex(v)
	}
	return v
}

func toInt(v any) int64 {
	switch x := v.(type) {
	case bool:
		if x {
			return 1
		}
		return 0
	case int64:
		return x
	}
	return 0
}

func toBig(v any) *big.Int {
	if x, ok := v.(*big.Int); ok {
		return x
	}
	return big.NewInt(toInt(v))
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case *big.Int:
		f, _ := new(big.Float).SetInt(x).Float64()
		return f
	}
	return float64(toInt(v))
}

func toComplex(v any) complex128 {
	if x, ok := v.(complex128); ok {
		return x
	}
	return complex(toFloat(v), 0)
}

// demote returns an int64 when b fits, else b itself.
func demote(b *big.Int) any {
	if b.IsInt64() {
		return b.Int64()
	}
	return b
}

// truthy reports the truth value of v.
func truthy(v any) bool {
	x, c := normalize(v)
	switch c {
	case classBool:
		return x.(bool)
	case classInt:
		return x.(int64) != 0
	case classBig:
		return x.(*big.Int).Sign() != 0
	case classFloat:
		return x.(float64) != 0
	case classComplex:
		return x.(complex128) != 0
	case classString:
		return x.(string) != ""
	}
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface, reflect.Func:
		return !rv.IsNil()
	}
	return true
}
