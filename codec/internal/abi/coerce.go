package abi

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
)

// Integer converts value to the two's-complement bit pattern of an integer
// of the given width, masked to that width.
//
// Go integers of any kind are range-checked against the target. Floats are
// rounded half to even, then range-checked. *big.Int values are truncated
// to the target width. Booleans become 1 or 0 and numeric strings are parsed.
func Integer(value any, bits int, signed bool) (uint64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case *big.Int:
		if v == nil {
			return 0, false
		}
		return truncateBig(v, bits), true
	case string:
		return parseInteger(v, bits, signed)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fitSigned(rv.Int(), bits, signed)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fitUnsigned(rv.Uint(), bits, signed)
	case reflect.Float32, reflect.Float64:
		return fitFloat(rv.Float(), bits, signed)
	case reflect.Bool:
		if rv.Bool() {
			return 1, true
		}
		return 0, true
	case reflect.String:
		return parseInteger(rv.String(), bits, signed)
	}
	return 0, false
}

// Float converts value to a float64.
func Float(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case *big.Int:
		if v == nil {
			return 0, false
		}
		f, _ := new(big.Float).SetInt(v).Float64()
		return f, true
	case *big.Float:
		if v == nil {
			return 0, false
		}
		f, _ := v.Float64()
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Bool:
		if rv.Bool() {
			return 1, true
		}
		return 0, true
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64)
		return f, err == nil
	}
	return 0, false
}

// Complex converts value to a complex128. Real values become (x, 0).
func Complex(value any) (complex128, bool) {
	if value == nil {
		return 0, false
	}
	if s, ok := value.(string); ok {
		c, err := strconv.ParseComplex(strings.TrimSpace(s), 128)
		return c, err == nil
	}

	rv := reflect.ValueOf(value)
	if k := rv.Kind(); k == reflect.Complex64 || k == reflect.Complex128 {
		return rv.Complex(), true
	}
	f, ok := Float(value)
	if !ok {
		return 0, false
	}
	return complex(f, 0), true
}

// Bool converts value to a bool. Numbers are true when non-zero.
func Bool(value any) (bool, bool) {
	switch v := value.(type) {
	case nil:
		return false, false
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return b, err == nil
	case *big.Int:
		if v == nil {
			return false, false
		}
		return v.Sign() != 0, true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0, true
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0, true
	case reflect.Complex64, reflect.Complex128:
		return rv.Complex() != 0, true
	}
	return false, false
}

// Bytes returns the byte-string form of value.
func Bytes(value any) []byte {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return []byte(v)
	case []byte:
		return v
	case fmt.Stringer:
		return []byte(v.String())
	}
	return []byte(fmt.Sprint(value))
}

func mask(bits int) uint64 {
	if bits >= 64 {
		return math.MaxUint64
	}
	return 1<<uint(bits) - 1
}

func truncateBig(v *big.Int, bits int) uint64 {
	m := new(big.Int).SetUint64(mask(bits))
	// big.Int And uses two's-complement semantics for negative operands.
	return new(big.Int).And(v, m).Uint64()
}

func fitSigned(v int64, bits int, signed bool) (uint64, bool) {
	if signed {
		if bits < 64 {
			lo := int64(-1) << uint(bits-1)
			hi := -lo - 1
			if v < lo || v > hi {
				return 0, false
			}
		}
		return uint64(v) & mask(bits), true
	}
	if v < 0 {
		return 0, false
	}
	return fitUnsigned(uint64(v), bits, false)
}

func fitUnsigned(v uint64, bits int, signed bool) (uint64, bool) {
	limit := mask(bits)
	if signed {
		limit >>= 1
	}
	if v > limit {
		return 0, false
	}
	return v, true
}

func fitFloat(f float64, bits int, signed bool) (uint64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	r := math.RoundToEven(f)
	if signed {
		bound := math.Ldexp(1, bits-1)
		if r < -bound || r >= bound {
			return 0, false
		}
		return uint64(int64(r)) & mask(bits), true
	}
	if r < 0 || r >= math.Ldexp(1, bits) {
		return 0, false
	}
	return uint64(r), true
}

func parseInteger(s string, bits int, signed bool) (uint64, bool) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return fitSigned(i, bits, signed)
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return fitUnsigned(u, bits, signed)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return fitFloat(f, bits, signed)
	}
	return 0, false
}
