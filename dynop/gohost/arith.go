package gohost

import (
	stderrors "errors"
	"fmt"
	"math"
	"math/big"
	"math/cmplx"
	"strings"

	"github.com/wippyai/ndcodec/dynop"
)

var (
	ErrDivisionByZero = stderrors.New("division by zero")
	ErrNegativeShift  = stderrors.New("negative shift count")
	ErrResultTooLarge = stderrors.New("integer result too large")
)

// maxResultBits bounds left shifts and integer powers so a single element
// cannot exhaust memory.
const maxResultBits = 1 << 16

func unsupported(op dynop.Op, a, b any) error {
	return fmt.Errorf("unsupported operand types for %s: %T and %T", op, a, b)
}

func binary(op dynop.Op) (dynop.BinaryFunc, bool) {
	switch op {
	case dynop.Add:
		return add, true
	case dynop.Subtract:
		return arith(op, (*big.Int).Sub, func(x, y float64) float64 { return x - y }, func(x, y complex128) complex128 { return x - y }), true
	case dynop.Multiply:
		return multiply, true
	case dynop.Divide:
		return divide, true
	case dynop.Power:
		return power, true
	case dynop.Remainder:
		return remainder, true
	case dynop.And:
		return bitwise(op, (*big.Int).And, func(x, y bool) bool { return x && y }), true
	case dynop.Or:
		return bitwise(op, (*big.Int).Or, func(x, y bool) bool { return x || y }), true
	case dynop.Xor:
		return bitwise(op, (*big.Int).Xor, func(x, y bool) bool { return x != y }), true
	case dynop.LeftShift:
		return shift(op, true), true
	case dynop.RightShift:
		return shift(op, false), true
	}
	return nil, false
}

// arith builds an operation over the numeric tower. Integer results are
// computed exactly and demoted to int64 when they fit.
func arith(
	op dynop.Op,
	bigFn func(z, x, y *big.Int) *big.Int,
	floatFn func(x, y float64) float64,
	complexFn func(x, y complex128) complex128,
) dynop.BinaryFunc {
	return func(a, b any) (any, error) {
		x, y, c, ok := promote(a, b)
		if !ok {
			return nil, unsupported(op, a, b)
		}
		switch c {
		case classInt, classBig:
			return demote(bigFn(new(big.Int), toBig(x), toBig(y))), nil
		case classFloat:
			return floatFn(x.(float64), y.(float64)), nil
		default:
			return complexFn(x.(complex128), y.(complex128)), nil
		}
	}
}

var addNumbers = arith(dynop.Add, (*big.Int).Add,
	func(x, y float64) float64 { return x + y },
	func(x, y complex128) complex128 { return x + y })

func add(a, b any) (any, error) {
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return sa + sb, nil
		}
	}
	return addNumbers(a, b)
}

var multiplyNumbers = arith(dynop.Multiply, (*big.Int).Mul,
	func(x, y float64) float64 { return x * y },
	func(x, y complex128) complex128 { return x * y })

func multiply(a, b any) (any, error) {
	if s, n, ok := stringRepeat(a, b); ok {
		if n <= 0 {
			return "", nil
		}
		return strings.Repeat(s, int(n)), nil
	}
	return multiplyNumbers(a, b)
}

func stringRepeat(a, b any) (string, int64, bool) {
	if s, ok := a.(string); ok {
		if n, c := normalize(b); c == classInt || c == classBool {
			return s, toInt(n), true
		}
	}
	if s, ok := b.(string); ok {
		if n, c := normalize(a); c == classInt || c == classBool {
			return s, toInt(n), true
		}
	}
	return "", 0, false
}

// divide is true division: integers divide to a float.
func divide(a, b any) (any, error) {
	x, y, c, ok := promote(a, b)
	if !ok {
		return nil, unsupported(dynop.Divide, a, b)
	}
	if c == classComplex {
		if y.(complex128) == 0 {
			return nil, ErrDivisionByZero
		}
		return x.(complex128) / y.(complex128), nil
	}
	fx, fy := toFloat(x), toFloat(y)
	if fy == 0 {
		return nil, ErrDivisionByZero
	}
	return fx / fy, nil
}

// remainder takes the sign of the divisor.
func remainder(a, b any) (any, error) {
	x, y, c, ok := promote(a, b)
	if !ok || c == classComplex {
		return nil, unsupported(dynop.Remainder, a, b)
	}
	if c == classFloat {
		fx, fy := x.(float64), y.(float64)
		if fy == 0 {
			return nil, ErrDivisionByZero
		}
		r := math.Mod(fx, fy)
		if r != 0 && (r < 0) != (fy < 0) {
			r += fy
		}
		return r, nil
	}
	bx, by := toBig(x), toBig(y)
	if by.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	r := new(big.Int).Rem(bx, by)
	if r.Sign() != 0 && r.Sign() != by.Sign() {
		r.Add(r, by)
	}
	return demote(r), nil
}

// power raises a to b. A negative integer exponent yields a float.
func power(a, b any) (any, error) {
	x, y, c, ok := promote(a, b)
	if !ok {
		return nil, unsupported(dynop.Power, a, b)
	}
	switch c {
	case classInt, classBig:
		bx, by := toBig(x), toBig(y)
		if by.Sign() < 0 {
			if bx.Sign() == 0 {
				return nil, ErrDivisionByZero
			}
			return math.Pow(toFloat(x), toFloat(y)), nil
		}
		// |x| <= 1 stays small for any exponent; otherwise the result
		// needs at least (bitlen(x)-1)*y bits.
		if bx.CmpAbs(big.NewInt(1)) > 0 {
			if !by.IsInt64() || by.Int64() > maxResultBits/int64(bx.BitLen()-1) {
				return nil, fmt.Errorf("%w: power %s", ErrResultTooLarge, by)
			}
		}
		return demote(new(big.Int).Exp(bx, by, nil)), nil
	case classFloat:
		fx, fy := x.(float64), y.(float64)
		if fx == 0 && fy < 0 {
			return nil, ErrDivisionByZero
		}
		return math.Pow(fx, fy), nil
	default:
		return cmplx.Pow(x.(complex128), y.(complex128)), nil
	}
}

// bitwise applies to integers, or to two booleans yielding a boolean.
func bitwise(op dynop.Op, bigFn func(z, x, y *big.Int) *big.Int, boolFn func(x, y bool) bool) dynop.BinaryFunc {
	return func(a, b any) (any, error) {
		x, ca := normalize(a)
		y, cb := normalize(b)
		if ca == classBool && cb == classBool {
			return boolFn(x.(bool), y.(bool)), nil
		}
		if !isIntegral(ca) || !isIntegral(cb) {
			return nil, unsupported(op, a, b)
		}
		return demote(bigFn(new(big.Int), toBig(convert(x, classInt)), toBig(convert(y, classInt)))), nil
	}
}

func shift(op dynop.Op, left bool) dynop.BinaryFunc {
	return func(a, b any) (any, error) {
		x, ca := normalize(a)
		y, cb := normalize(b)
		if !isIntegral(ca) || !isIntegral(cb) {
			return nil, unsupported(op, a, b)
		}
		bx := toBig(convert(x, classInt))
		by := toBig(convert(y, classInt))
		if by.Sign() < 0 {
			return nil, ErrNegativeShift
		}
		if !left {
			if !by.IsInt64() || by.Int64() > int64(bx.BitLen()) {
				if bx.Sign() < 0 {
					return int64(-1), nil
				}
				return int64(0), nil
			}
			return demote(new(big.Int).Rsh(bx, uint(by.Int64()))), nil
		}
		if !by.IsInt64() || by.Int64() > maxResultBits {
			return nil, fmt.Errorf("%w: shift count %s", ErrResultTooLarge, by)
		}
		return demote(new(big.Int).Lsh(bx, uint(by.Int64()))), nil
	}
}

func isIntegral(c class) bool {
	return c == classBool || c == classInt || c == classBig
}

func unary(op dynop.Op) (dynop.UnaryFunc, bool) {
	switch op {
	case dynop.Negate:
		return negate, true
	case dynop.Absolute:
		return absolute, true
	case dynop.Not:
		return func(a any) (any, error) { return !truthy(a), nil }, true
	}
	return nil, false
}

func negate(a any) (any, error) {
	x, c := normalize(a)
	switch c {
	case classBool, classInt, classBig:
		return demote(new(big.Int).Neg(toBig(convert(x, classInt)))), nil
	case classFloat:
		return -x.(float64), nil
	case classComplex:
		return -x.(complex128), nil
	}
	return nil, fmt.Errorf("bad operand type for negate: %T", a)
}

func absolute(a any) (any, error) {
	x, c := normalize(a)
	switch c {
	case classBool, classInt, classBig:
		return demote(new(big.Int).Abs(toBig(convert(x, classInt)))), nil
	case classFloat:
		return math.Abs(x.(float64)), nil
	case classComplex:
		return cmplx.Abs(x.(complex128)), nil
	}
	return nil, fmt.Errorf("bad operand type for absolute: %T", a)
}
