package gohost

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strings"

	"github.com/wippyai/ndcodec/dynop"
)

func compare(op dynop.Op) (dynop.CompareFunc, bool) {
	switch op {
	case dynop.Equal:
		return equal, true
	case dynop.NotEqual:
		return func(a, b any) (bool, error) {
			eq, err := equal(a, b)
			return !eq, err
		}, true
	case dynop.Greater:
		return ordered(op, func(c int) bool { return c > 0 }), true
	case dynop.GreaterEqual:
		return ordered(op, func(c int) bool { return c >= 0 }), true
	case dynop.Less:
		return ordered(op, func(c int) bool { return c < 0 }), true
	case dynop.LessEqual:
		return ordered(op, func(c int) bool { return c <= 0 }), true
	}
	return nil, false
}

// equal compares numbers by value across classes, strings by content and
// anything else structurally. It never fails.
func equal(a, b any) (bool, error) {
	x, y, c, ok := promote(a, b)
	if ok {
		switch c {
		case classInt:
			return x.(int64) == y.(int64), nil
		case classBig:
			return x.(*big.Int).Cmp(y.(*big.Int)) == 0, nil
		case classFloat:
			return x.(float64) == y.(float64), nil
		default:
			return x.(complex128) == y.(complex128), nil
		}
	}
	if sx, ok := x.(string); ok {
		sy, ok := y.(string)
		return ok && sx == sy, nil
	}
	return reflect.DeepEqual(a, b), nil
}

// ordered builds an ordering comparison. Complex numbers have no order.
func ordered(op dynop.Op, test func(c int) bool) dynop.CompareFunc {
	return func(a, b any) (bool, error) {
		c, ok, err := order(a, b)
		if err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		return ok && test(c), nil
	}
}

// order returns -1, 0 or +1. ok is false when a NaN is involved, which
// makes every ordering test false.
func order(a, b any) (c int, ok bool, err error) {
	x, y, cls, numeric := promote(a, b)
	if numeric {
		switch cls {
		case classInt:
			return cmpInt(x.(int64), y.(int64)), true, nil
		case classBig:
			return x.(*big.Int).Cmp(y.(*big.Int)), true, nil
		case classFloat:
			fx, fy := x.(float64), y.(float64)
			if math.IsNaN(fx) || math.IsNaN(fy) {
				return 0, false, nil
			}
			return cmpFloat(fx, fy), true, nil
		}
		return 0, false, fmt.Errorf("complex values are unordered")
	}
	if sx, isStr := x.(string); isStr {
		if sy, isStr := y.(string); isStr {
			return strings.Compare(sx, sy), true, nil
		}
	}
	return 0, false, fmt.Errorf("cannot order %T and %T", a, b)
}

func cmpInt(x, y int64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func cmpFloat(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}
