// Package errors provides structured error types for the ndcodec module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: record field path, Go type and element
// type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindUnsupportedConversion).
//		Path("point", "b").
//		GoType("chan int").
//		Tag("double").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ArityMismatch(errors.PhaseEncode, 2, 3)
//	err := errors.SizeMismatch(errors.PhaseRegistry, "pointer", 2)
//
// Kind sentinels match regardless of phase:
//
//	errors.Is(err, errors.ErrUnsupportedType)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
