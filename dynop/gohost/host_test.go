package gohost

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/ndcodec/dynop"
)

func bin(t *testing.T, op dynop.Op, a, b any) any {
	t.Helper()
	fn, err := New().ResolveBinary(op)
	require.NoError(t, err)
	r, err := fn(a, b)
	require.NoError(t, err)
	return r
}

func cmpOp(t *testing.T, op dynop.Op, a, b any) bool {
	t.Helper()
	fn, err := New().ResolveCompare(op)
	require.NoError(t, err)
	r, err := fn(a, b)
	require.NoError(t, err)
	return r
}

func TestResolveRejectsWrongCategory(t *testing.T) {
	h := New()
	_, err := h.ResolveCompare(dynop.Add)
	assert.Error(t, err)
	_, err = h.ResolveBinary(dynop.Negate)
	assert.Error(t, err)
	_, err = h.ResolveUnary(dynop.Less)
	assert.Error(t, err)
	_, err = h.ResolveMethod("", 0)
	assert.Error(t, err)
	_, err = h.ResolveMethod("x", 2)
	assert.Error(t, err)
}

func TestArithmeticPromotion(t *testing.T) {
	tests := []struct {
		name string
		op   dynop.Op
		a, b any
		want any
	}{
		{"int add", dynop.Add, 2, 3, int64(5)},
		{"int8 add", dynop.Add, int8(100), int8(100), int64(200)},
		{"mixed add", dynop.Add, 2, 0.5, 2.5},
		{"float32 widens", dynop.Add, float32(1.5), 1, 2.5},
		{"complex add", dynop.Add, complex(1, 1), 1, complex(2, 1)},
		{"bool add", dynop.Add, true, true, int64(2)},
		{"string concat", dynop.Add, "ab", "cd", "abcd"},
		{"subtract", dynop.Subtract, 10, 4, int64(6)},
		{"multiply", dynop.Multiply, 6, 7, int64(42)},
		{"repeat", dynop.Multiply, "ab", 3, "ababab"},
		{"repeat reversed", dynop.Multiply, 2, "ab", "abab"},
		{"true divide", dynop.Divide, 7, 2, 3.5},
		{"power", dynop.Power, 2, 10, int64(1024)},
		{"negative power", dynop.Power, 2, -1, 0.5},
		{"float power", dynop.Power, 4.0, 0.5, 2.0},
		{"unit base huge power", dynop.Power, 1, int64(1) << 62, int64(1)},
		{"minus one odd huge power", dynop.Power, -1, int64(1)<<62 + 1, int64(-1)},
		{"zero huge power", dynop.Power, 0, int64(1) << 62, int64(0)},
		{"remainder", dynop.Remainder, 7, 3, int64(1)},
		{"remainder divisor sign", dynop.Remainder, -7, 3, int64(2)},
		{"remainder negative divisor", dynop.Remainder, 7, -3, int64(-2)},
		{"float remainder", dynop.Remainder, -1.0, 3.0, 2.0},
		{"and", dynop.And, 0b1100, 0b1010, int64(0b1000)},
		{"or", dynop.Or, 0b1100, 0b1010, int64(0b1110)},
		{"xor", dynop.Xor, 0b1100, 0b1010, int64(0b0110)},
		{"bool and", dynop.And, true, false, false},
		{"bool xor", dynop.Xor, true, false, true},
		{"left shift", dynop.LeftShift, 1, 4, int64(16)},
		{"right shift", dynop.RightShift, 256, 4, int64(16)},
		{"right shift negative", dynop.RightShift, -1, 100, int64(-1)},
		{"right shift past width", dynop.RightShift, 5, 100, int64(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bin(t, tt.op, tt.a, tt.b))
		})
	}
}

func TestIntegerOverflowPromotesToBig(t *testing.T) {
	r := bin(t, dynop.Add, int64(math.MaxInt64), 1)
	b, ok := r.(*big.Int)
	require.True(t, ok, "got %T", r)
	want := new(big.Int).Add(big.NewInt(math.MaxInt64), big.NewInt(1))
	assert.Zero(t, want.Cmp(b))

	// Falls back to int64 once the result fits again.
	assert.Equal(t, int64(math.MaxInt64), bin(t, dynop.Subtract, b, 1))

	r = bin(t, dynop.Add, uint64(math.MaxUint64), 0)
	_, ok = r.(*big.Int)
	assert.True(t, ok)
}

func TestArithmeticErrors(t *testing.T) {
	h := New()
	for _, tt := range []struct {
		name string
		op   dynop.Op
		a, b any
		err  error
	}{
		{"divide by zero", dynop.Divide, 1, 0, ErrDivisionByZero},
		{"float divide by zero", dynop.Divide, 1.0, 0.0, ErrDivisionByZero},
		{"remainder by zero", dynop.Remainder, 1, 0, ErrDivisionByZero},
		{"zero negative power", dynop.Power, 0, -1, ErrDivisionByZero},
		{"negative shift", dynop.LeftShift, 1, -1, ErrNegativeShift},
		{"string minus", dynop.Subtract, "a", "b", nil},
		{"float and", dynop.And, 1.5, 1, nil},
		{"complex remainder", dynop.Remainder, complex(1, 1), 1, nil},
		{"huge shift", dynop.LeftShift, 1, 1 << 20, ErrResultTooLarge},
		{"huge power", dynop.Power, 2, int64(1) << 62, ErrResultTooLarge},
		{"huge big power", dynop.Power, new(big.Int).Lsh(big.NewInt(1), 100), 1 << 10, ErrResultTooLarge},
		{"negative base huge power", dynop.Power, -3, 1 << 20, ErrResultTooLarge},
	} {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := h.ResolveBinary(tt.op)
			require.NoError(t, err)
			_, err = fn(tt.a, tt.b)
			require.Error(t, err)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err), "got %v", err)
			}
		})
	}
}

func TestUnary(t *testing.T) {
	h := New()
	neg, err := h.ResolveUnary(dynop.Negate)
	require.NoError(t, err)
	abs, err := h.ResolveUnary(dynop.Absolute)
	require.NoError(t, err)
	not, err := h.ResolveUnary(dynop.Not)
	require.NoError(t, err)

	r, err := neg(5)
	require.NoError(t, err)
	assert.Equal(t, int64(-5), r)

	r, err = neg(int64(math.MinInt64))
	require.NoError(t, err)
	_, isBig := r.(*big.Int)
	assert.True(t, isBig)

	r, err = neg(1.5)
	require.NoError(t, err)
	assert.Equal(t, -1.5, r)

	r, err = abs(complex(3, 4))
	require.NoError(t, err)
	assert.Equal(t, 5.0, r)

	r, err = abs(-7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), r)

	_, err = neg("x")
	assert.Error(t, err)

	for v, want := range map[any]bool{0: true, 1: false, "": true, "a": false, 0.0: true} {
		r, err = not(v)
		require.NoError(t, err)
		assert.Equal(t, want, r, "not %v", v)
	}
	r, err = not(nil)
	require.NoError(t, err)
	assert.Equal(t, true, r)
}

func TestCompare(t *testing.T) {
	assert.True(t, cmpOp(t, dynop.Equal, 1, 1.0))
	assert.True(t, cmpOp(t, dynop.Equal, int8(3), uint64(3)))
	assert.True(t, cmpOp(t, dynop.Equal, true, 1))
	assert.True(t, cmpOp(t, dynop.Equal, complex(2, 0), 2))
	assert.True(t, cmpOp(t, dynop.Equal, "a", "a"))
	assert.False(t, cmpOp(t, dynop.Equal, "1", 1))
	assert.True(t, cmpOp(t, dynop.Equal, []int{1}, []int{1}))
	assert.True(t, cmpOp(t, dynop.NotEqual, 1, 2))

	assert.True(t, cmpOp(t, dynop.Less, 1, 1.5))
	assert.True(t, cmpOp(t, dynop.LessEqual, 2, 2))
	assert.True(t, cmpOp(t, dynop.Greater, "b", "a"))
	assert.True(t, cmpOp(t, dynop.GreaterEqual, uint64(math.MaxUint64), int64(math.MaxInt64)))

	nan := math.NaN()
	for _, op := range []dynop.Op{dynop.Less, dynop.LessEqual, dynop.Greater, dynop.GreaterEqual} {
		assert.False(t, cmpOp(t, op, nan, 1.0), op.String())
	}
	assert.False(t, cmpOp(t, dynop.Equal, nan, nan))

	less, err := New().ResolveCompare(dynop.Less)
	require.NoError(t, err)
	_, err = less(complex(1, 1), 1)
	assert.Error(t, err)
	_, err = less("a", 1)
	assert.Error(t, err)
}

type counter struct{ n int64 }

func (c *counter) Inc(by int64) int64 {
	c.n += by
	return c.n
}

func (c *counter) Reset() {
	c.n = 0
}

func (c *counter) Fail() error {
	return errors.New("failed")
}

func (c *counter) Value() (int64, error) {
	return c.n, nil
}

func TestMethods(t *testing.T) {
	h := New()

	invoke := func(name string, obj any, args ...any) (any, error) {
		fn, err := h.ResolveMethod(name, len(args))
		require.NoError(t, err)
		return fn(obj, args...)
	}

	r, err := invoke("conjugate", complex(1, 2))
	require.NoError(t, err)
	assert.Equal(t, complex(1, -2), r)

	r, err = invoke("real", complex(1, 2))
	require.NoError(t, err)
	assert.Equal(t, 1.0, r)

	r, err = invoke("imag", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), r)

	r, err = invoke("bit_length", 255)
	require.NoError(t, err)
	assert.Equal(t, int64(8), r)

	c := &counter{}
	r, err = invoke("inc", c, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), r)

	r, err = invoke("Inc", c, int32(2))
	require.NoError(t, err)
	assert.Equal(t, int64(5), r)

	r, err = invoke("value", c)
	require.NoError(t, err)
	assert.Equal(t, int64(5), r)

	r, err = invoke("reset", c)
	require.NoError(t, err)
	assert.Nil(t, r)
	assert.Zero(t, c.n)

	_, err = invoke("fail", c)
	assert.EqualError(t, err, "failed")

	_, err = invoke("missing", c)
	assert.Error(t, err)

	_, err = invoke("inc", c, "x")
	assert.Error(t, err)
}

func TestDefine(t *testing.T) {
	h := New()
	h.Define("real", 0, func(any, ...any) (any, error) { return "overridden", nil })
	fn, err := h.ResolveMethod("real", 0)
	require.NoError(t, err)
	r, err := fn(1)
	require.NoError(t, err)
	assert.Equal(t, "overridden", r)
}

func TestExportName(t *testing.T) {
	assert.Equal(t, "BitLength", exportName("bit_length"))
	assert.Equal(t, "Abs", exportName("__abs__"))
	assert.Equal(t, "Inc", exportName("inc"))
	assert.Equal(t, "_", exportName("_"))
}
