package gohost

import (
	"fmt"
	"sync"

	"github.com/wippyai/ndcodec/dynop"
)

// Host implements dynop.Host over plain Go values.
type Host struct {
	methods map[string]map[int]dynop.MethodFunc
	mu      sync.RWMutex
}

var _ dynop.Host = (*Host)(nil)

// New returns a Host with the built-in numeric methods defined.
func New() *Host {
	return &Host{methods: builtins()}
}

// Define registers fn as the method name taking arity arguments. Defined
// methods take precedence over methods found by reflection.
func (h *Host) Define(name string, arity int, fn dynop.MethodFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.methods[name] == nil {
		h.methods[name] = make(map[int]dynop.MethodFunc)
	}
	h.methods[name][arity] = fn
}

func (h *Host) ResolveCompare(op dynop.Op) (dynop.CompareFunc, error) {
	if fn, ok := compare(op); ok {
		return fn, nil
	}
	return nil, fmt.Errorf("%s is not a comparison", op)
}

func (h *Host) ResolveBinary(op dynop.Op) (dynop.BinaryFunc, error) {
	if fn, ok := binary(op); ok {
		return fn, nil
	}
	return nil, fmt.Errorf("%s is not a binary operation", op)
}

func (h *Host) ResolveUnary(op dynop.Op) (dynop.UnaryFunc, error) {
	if fn, ok := unary(op); ok {
		return fn, nil
	}
	return nil, fmt.Errorf("%s is not a unary operation", op)
}

// ResolveMethod returns a defined method, or one that finds name on the
// receiver by reflection when called.
func (h *Host) ResolveMethod(name string, arity int) (dynop.MethodFunc, error) {
	if name == "" {
		return nil, fmt.Errorf("empty method name")
	}
	if arity < 0 || arity > 1 {
		return nil, fmt.Errorf("method %s: unsupported arity %d", name, arity)
	}
	h.mu.RLock()
	fn, ok := h.methods[name][arity]
	h.mu.RUnlock()
	if ok {
		return fn, nil
	}
	return reflectMethod(name, arity), nil
}
