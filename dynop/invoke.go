package dynop

import (
	"go.uber.org/zap"

	"github.com/wippyai/ndcodec/errors"
	"github.com/wippyai/ndcodec/resource"
)

// Invoke calls method on the value behind obj. arg 0 calls the method with
// no arguments, any other handle passes its value as the single argument.
// The result is a new reference owned by the caller, or 0 when the call
// produced no value.
func (b *Bridge) Invoke(obj resource.Handle, method string, arg resource.Handle) (resource.Handle, error) {
	arity := 1
	if arg == 0 {
		arity = 0
	}

	fn, err := b.method(method, arity)
	if err != nil {
		return 0, err
	}

	target, err := b.value(obj, errors.PhaseInvoke)
	if err != nil {
		return 0, err
	}
	var args []any
	if arity == 1 {
		v, err := b.value(arg, errors.PhaseInvoke)
		if err != nil {
			return 0, err
		}
		args = []any{v}
	}

	res, err := fn(target, args...)
	if err != nil {
		return 0, errors.New(errors.PhaseInvoke, errors.KindOperationFailed).
			Detail("call %s", method).
			Cause(err).
			Build()
	}
	return b.box(res, errors.PhaseInvoke)
}

// method returns the cached callable for (name, arity), resolving it on
// first use. The host resolves outside the lock; when two callers race the
// first insert wins.
func (b *Bridge) method(name string, arity int) (MethodFunc, error) {
	key := methodKey{name: name, arity: arity}

	b.mu.Lock()
	fn, ok := b.methods[key]
	b.mu.Unlock()
	if ok {
		return fn, nil
	}

	fn, err := b.host.ResolveMethod(name, arity)
	if err != nil {
		return nil, errors.New(errors.PhaseInvoke, errors.KindUnsupportedOperation).
			Detail("resolve method %s/%d", name, arity).
			Cause(err).
			Build()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if cached, ok := b.methods[key]; ok {
		return cached, nil
	}
	b.methods[key] = fn

	Logger().Debug("method callable cached", zap.String("method", name), zap.Int("arity", arity))
	return fn, nil
}
