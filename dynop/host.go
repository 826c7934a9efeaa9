package dynop

// CompareFunc compares two host values.
type CompareFunc func(a, b any) (bool, error)

// BinaryFunc combines two host values into a new one.
type BinaryFunc func(a, b any) (any, error)

// UnaryFunc maps one host value to a new one.
type UnaryFunc func(a any) (any, error)

// MethodFunc calls a named member on obj. A nil result means the call
// produced no value.
type MethodFunc func(obj any, args ...any) (any, error)

// Host is a dynamic value model: it resolves each operation once to a
// callable that works on any of its values.
type Host interface {
	ResolveCompare(op Op) (CompareFunc, error)
	ResolveBinary(op Op) (BinaryFunc, error)
	ResolveUnary(op Op) (UnaryFunc, error)
	ResolveMethod(name string, arity int) (MethodFunc, error)
}
