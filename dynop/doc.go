// Package dynop dispatches arithmetic, comparison and method calls on
// dynamically typed values for element-wise loops.
//
// Values cross the bridge as resource.Handle references, never as raw Go
// values, so a native loop can call the same operation on any element
// without knowing its type.
//
// # Binding
//
// A Host resolves each primitive Op once to a callable over all of its
// values. New builds a Bridge from a Host; Bind does the same for the
// single process-wide bridge:
//
//	b, err := dynop.Bind(gohost.New())
//	ops := b.Ops()
//
//	sum, err := ops.Add(x, y) // new reference, release when done
//	less, err := ops.Less(x, y)
//
// Binding a second, different host fails with
// multiple_contexts_unsupported.
//
// # Derived Operations
//
//	Sign(a)       -1, 0 or 1 (int64) from Less/Greater against 0.0
//	Square(a)     Multiply(a, a)
//	Reciprocal(a) Divide(1.0, a)
//	Min(a, b)     a if LessEqual(a, b), else b
//	Max(a, b)     a if GreaterEqual(a, b), else b
//	GetOne(a)     int64 1
//
// # Method Calls
//
//	res, err := b.Invoke(obj, "conjugate", 0) // arity 0
//	res, err := b.Invoke(obj, "Add", arg)      // arity 1
//
// Callables are resolved once per (name, arity) and cached. The call runs
// outside the cache lock.
package dynop
