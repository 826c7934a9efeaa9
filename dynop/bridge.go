package dynop

import (
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/ndcodec/errors"
	"github.com/wippyai/ndcodec/resource"
)

// CompareOp compares the values behind two handles.
type CompareOp func(a, b resource.Handle) (bool, error)

// BinaryOp combines the values behind two handles. The result handle is a
// new reference owned by the caller.
type BinaryOp func(a, b resource.Handle) (resource.Handle, error)

// UnaryOp maps the value behind a handle. The result handle is a new
// reference owned by the caller.
type UnaryOp func(a resource.Handle) (resource.Handle, error)

// Ops is the catalogue of operation handles built by a Bridge.
type Ops struct {
	Equal        CompareOp
	NotEqual     CompareOp
	Greater      CompareOp
	GreaterEqual CompareOp
	Less         CompareOp
	LessEqual    CompareOp

	Add        BinaryOp
	Subtract   BinaryOp
	Multiply   BinaryOp
	Divide     BinaryOp
	Power      BinaryOp
	Remainder  BinaryOp
	And        BinaryOp
	Or         BinaryOp
	Xor        BinaryOp
	LeftShift  BinaryOp
	RightShift BinaryOp

	Negate   UnaryOp
	Absolute UnaryOp
	Not      UnaryOp

	// Composed from the primitives above.
	Sign       UnaryOp
	Square     UnaryOp
	Reciprocal UnaryOp
	GetOne     UnaryOp
	Min        BinaryOp
	Max        BinaryOp
}

type methodKey struct {
	name  string
	arity int
}

// Bridge binds a Host's operations to handle-based callables.
// It is safe for concurrent use.
type Bridge struct {
	host    Host
	handles *resource.Table
	methods map[methodKey]MethodFunc
	ops     Ops
	mu      sync.Mutex
}

// New resolves every primitive operation of host once and builds the
// catalogue over handles from the given table.
func New(host Host, handles *resource.Table) (*Bridge, error) {
	if host == nil {
		return nil, errors.InvalidInput(errors.PhaseBridge, "nil host")
	}
	if handles == nil {
		handles = resource.Default()
	}
	b := &Bridge{
		host:    host,
		handles: handles,
		methods: make(map[methodKey]MethodFunc),
	}
	if err := b.bind(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bridge) bind() error {
	compares := []struct {
		dst *CompareOp
		op  Op
	}{
		{&b.ops.Equal, Equal},
		{&b.ops.NotEqual, NotEqual},
		{&b.ops.Greater, Greater},
		{&b.ops.GreaterEqual, GreaterEqual},
		{&b.ops.Less, Less},
		{&b.ops.LessEqual, LessEqual},
	}
	for _, c := range compares {
		fn, err := b.host.ResolveCompare(c.op)
		if err != nil {
			return resolveError(c.op, err)
		}
		*c.dst = b.compareOp(c.op, fn)
	}

	binaries := []struct {
		dst *BinaryOp
		op  Op
	}{
		{&b.ops.Add, Add},
		{&b.ops.Subtract, Subtract},
		{&b.ops.Multiply, Multiply},
		{&b.ops.Divide, Divide},
		{&b.ops.Power, Power},
		{&b.ops.Remainder, Remainder},
		{&b.ops.And, And},
		{&b.ops.Or, Or},
		{&b.ops.Xor, Xor},
		{&b.ops.LeftShift, LeftShift},
		{&b.ops.RightShift, RightShift},
	}
	for _, c := range binaries {
		fn, err := b.host.ResolveBinary(c.op)
		if err != nil {
			return resolveError(c.op, err)
		}
		*c.dst = b.binaryOp(c.op, fn)
	}

	unaries := []struct {
		dst *UnaryOp
		op  Op
	}{
		{&b.ops.Negate, Negate},
		{&b.ops.Absolute, Absolute},
		{&b.ops.Not, Not},
	}
	for _, c := range unaries {
		fn, err := b.host.ResolveUnary(c.op)
		if err != nil {
			return resolveError(c.op, err)
		}
		*c.dst = b.unaryOp(c.op, fn)
	}

	b.bindDerived()
	return nil
}

// Ops returns the operation catalogue.
func (b *Bridge) Ops() *Ops {
	return &b.ops
}

// Host returns the value model the bridge is bound to.
func (b *Bridge) Host() Host {
	return b.host
}

// Handles returns the table operands and results live in.
func (b *Bridge) Handles() *resource.Table {
	return b.handles
}

// Box stores v in the bridge's table and returns a new reference to it.
// A nil v yields handle 0.
func (b *Bridge) Box(v any) (resource.Handle, error) {
	return b.box(v, errors.PhaseBridge)
}

// Value returns the value behind h without touching its references.
func (b *Bridge) Value(h resource.Handle) (any, error) {
	return b.value(h, errors.PhaseBridge)
}

func (b *Bridge) box(v any, phase errors.Phase) (resource.Handle, error) {
	if v == nil {
		return 0, nil
	}
	h, err := b.handles.Acquire(v)
	if err != nil {
		return 0, errors.Wrap(phase, errors.KindOperationFailed, err, "box result")
	}
	return h, nil
}

func (b *Bridge) value(h resource.Handle, phase errors.Phase) (any, error) {
	v, ok := b.handles.Get(h)
	if !ok {
		return nil, errors.InvalidHandle(phase, uint32(h))
	}
	return v, nil
}

func (b *Bridge) values(x, y resource.Handle) (any, any, error) {
	vx, err := b.value(x, errors.PhaseBridge)
	if err != nil {
		return nil, nil, err
	}
	vy, err := b.value(y, errors.PhaseBridge)
	if err != nil {
		return nil, nil, err
	}
	return vx, vy, nil
}

func (b *Bridge) compareOp(op Op, fn CompareFunc) CompareOp {
	return func(x, y resource.Handle) (bool, error) {
		vx, vy, err := b.values(x, y)
		if err != nil {
			return false, err
		}
		r, err := fn(vx, vy)
		if err != nil {
			return false, opError(op, err)
		}
		return r, nil
	}
}

func (b *Bridge) binaryOp(op Op, fn BinaryFunc) BinaryOp {
	return func(x, y resource.Handle) (resource.Handle, error) {
		vx, vy, err := b.values(x, y)
		if err != nil {
			return 0, err
		}
		r, err := fn(vx, vy)
		if err != nil {
			return 0, opError(op, err)
		}
		return b.box(r, errors.PhaseBridge)
	}
}

func (b *Bridge) unaryOp(op Op, fn UnaryFunc) UnaryOp {
	return func(x resource.Handle) (resource.Handle, error) {
		vx, err := b.value(x, errors.PhaseBridge)
		if err != nil {
			return 0, err
		}
		r, err := fn(vx)
		if err != nil {
			return 0, opError(op, err)
		}
		return b.box(r, errors.PhaseBridge)
	}
}

// bindDerived composes sign, square, reciprocal, min, max and getOne from
// the primitive operations.
func (b *Bridge) bindDerived() {
	ops := &b.ops

	ops.Sign = func(x resource.Handle) (resource.Handle, error) {
		zero, err := b.box(0.0, errors.PhaseBridge)
		if err != nil {
			return 0, err
		}
		defer b.handles.Release(zero) //nolint:errcheck // zero is owned here

		neg, err := ops.Less(x, zero)
		if err != nil {
			return 0, err
		}
		if neg {
			return b.box(int64(-1), errors.PhaseBridge)
		}
		pos, err := ops.Greater(x, zero)
		if err != nil {
			return 0, err
		}
		if pos {
			return b.box(int64(1), errors.PhaseBridge)
		}
		return b.box(int64(0), errors.PhaseBridge)
	}

	ops.Square = func(x resource.Handle) (resource.Handle, error) {
		return ops.Multiply(x, x)
	}

	ops.Reciprocal = func(x resource.Handle) (resource.Handle, error) {
		one, err := b.box(1.0, errors.PhaseBridge)
		if err != nil {
			return 0, err
		}
		defer b.handles.Release(one) //nolint:errcheck // one is owned here
		return ops.Divide(one, x)
	}

	ops.Min = b.selectOp(ops.LessEqual)
	ops.Max = b.selectOp(ops.GreaterEqual)

	ops.GetOne = func(resource.Handle) (resource.Handle, error) {
		return b.box(int64(1), errors.PhaseBridge)
	}
}

// selectOp returns whichever operand satisfies keepFirst(x, y), as a new
// reference to that operand.
func (b *Bridge) selectOp(keepFirst CompareOp) BinaryOp {
	return func(x, y resource.Handle) (resource.Handle, error) {
		first, err := keepFirst(x, y)
		if err != nil {
			return 0, err
		}
		pick := y
		if first {
			pick = x
		}
		if err := b.handles.Retain(pick); err != nil {
			return 0, err
		}
		return pick, nil
	}
}

func resolveError(op Op, err error) error {
	return errors.New(errors.PhaseBridge, errors.KindUnsupportedOperation).
		Detail("resolve %s", op).
		Cause(err).
		Build()
}

func opError(op Op, err error) error {
	return errors.New(errors.PhaseBridge, errors.KindOperationFailed).
		Detail(op.String()).
		Cause(err).
		Build()
}

var (
	current atomic.Pointer[Bridge]
	bindMu  sync.Mutex
	binds   atomic.Int64
)

// Bind builds the process-wide bridge for host over resource.Default().
// Binding the same host again returns the existing bridge; binding a
// different host fails with multiple_contexts_unsupported.
func Bind(host Host) (*Bridge, error) {
	if b := current.Load(); b != nil {
		return sameContext(b, host)
	}

	bindMu.Lock()
	defer bindMu.Unlock()

	if b := current.Load(); b != nil {
		return sameContext(b, host)
	}

	b, err := New(host, resource.Default())
	if err != nil {
		return nil, err
	}
	binds.Add(1)
	current.Store(b)

	Logger().Debug("operator bridge bound", zap.String("host", reflect.TypeOf(host).String()))
	return b, nil
}

// Current returns the process-wide bridge.
func Current() (*Bridge, error) {
	if b := current.Load(); b != nil {
		return b, nil
	}
	return nil, errors.NotInitialized(errors.PhaseBridge, "operator bridge")
}

func sameContext(b *Bridge, host Host) (*Bridge, error) {
	if sameHost(b.host, host) {
		return b, nil
	}
	return nil, errors.New(errors.PhaseBridge, errors.KindMultipleContexts).
		Detail("bridge already bound to %T", b.host).
		Build()
}

func sameHost(a, b Host) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
