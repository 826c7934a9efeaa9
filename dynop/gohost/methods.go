package gohost

import (
	"fmt"
	"math/big"
	"math/cmplx"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/wippyai/ndcodec/dynop"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func builtins() map[string]map[int]dynop.MethodFunc {
	return map[string]map[int]dynop.MethodFunc{
		"conjugate": {0: conjugate},
		"real":      {0: realPart},
		"imag":      {0: imagPart},
		"bit_length": {0: func(obj any, _ ...any) (any, error) {
			x, c := normalize(obj)
			if !isIntegral(c) {
				return nil, fmt.Errorf("bit_length of %T", obj)
			}
			return int64(toBig(convert(x, classInt)).BitLen()), nil
		}},
		"__abs__": {0: func(obj any, _ ...any) (any, error) { return absolute(obj) }},
	}
}

func conjugate(obj any, _ ...any) (any, error) {
	x, c := normalize(obj)
	switch c {
	case classComplex:
		return cmplx.Conj(x.(complex128)), nil
	case classBool, classInt, classBig, classFloat:
		return x, nil
	}
	return nil, fmt.Errorf("conjugate of %T", obj)
}

func realPart(obj any, _ ...any) (any, error) {
	x, c := normalize(obj)
	switch c {
	case classComplex:
		return real(x.(complex128)), nil
	case classBool, classInt, classBig, classFloat:
		return x, nil
	}
	return nil, fmt.Errorf("real of %T", obj)
}

func imagPart(obj any, _ ...any) (any, error) {
	x, c := normalize(obj)
	switch c {
	case classComplex:
		return imag(x.(complex128)), nil
	case classFloat:
		return 0.0, nil
	case classBool, classInt, classBig:
		return int64(0), nil
	}
	return nil, fmt.Errorf("imag of %T", obj)
}

// reflectMethod looks name up on the dynamic type of obj at call time,
// trying it verbatim and then in CamelCase.
func reflectMethod(name string, arity int) dynop.MethodFunc {
	candidates := []string{name}
	if exported := exportName(name); exported != name {
		candidates = append(candidates, exported)
	}
	return func(obj any, args ...any) (any, error) {
		if obj == nil {
			return nil, fmt.Errorf("method %s on nil", name)
		}
		rv := reflect.ValueOf(obj)
		var m reflect.Value
		for _, n := range candidates {
			if m = rv.MethodByName(n); m.IsValid() {
				break
			}
		}
		if !m.IsValid() {
			return nil, fmt.Errorf("%T has no method %s", obj, name)
		}
		return call(m, name, arity, args)
	}
}

func call(m reflect.Value, name string, arity int, args []any) (any, error) {
	mt := m.Type()
	if mt.IsVariadic() || mt.NumIn() != arity || len(args) != arity {
		return nil, fmt.Errorf("method %s takes %d arguments, called with %d", name, mt.NumIn(), len(args))
	}

	in := make([]reflect.Value, arity)
	for i, arg := range args {
		want := mt.In(i)
		if arg == nil {
			in[i] = reflect.Zero(want)
			continue
		}
		v := reflect.ValueOf(arg)
		switch {
		case v.Type().AssignableTo(want):
		case v.Type().ConvertibleTo(want) && numericKind(v.Kind()) && numericKind(want.Kind()):
			v = v.Convert(want)
		default:
			return nil, fmt.Errorf("method %s: cannot use %s as %s", name, v.Type(), want)
		}
		in[i] = v
	}

	out := m.Call(in)
	switch {
	case len(out) == 0:
		return nil, nil
	case len(out) == 1 && mt.Out(0) == errorType:
		return nil, asError(out[0])
	case len(out) == 1:
		return result(out[0]), nil
	case len(out) == 2 && mt.Out(1) == errorType:
		if err := asError(out[1]); err != nil {
			return nil, err
		}
		return result(out[0]), nil
	}
	return nil, fmt.Errorf("method %s returns %d values", name, len(out))
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}

func result(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil
		}
	}
	r := v.Interface()
	if b, ok := r.(*big.Int); ok {
		return demote(b)
	}
	return r
}

func numericKind(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Complex128
}

// exportName turns snake_case into CamelCase.
func exportName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return name
	}
	if r, _ := utf8.DecodeRuneInString(b.String()); !unicode.IsLetter(r) {
		return name
	}
	return b.String()
}
