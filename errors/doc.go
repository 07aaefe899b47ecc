// Package errors provides structured error types for the binarypack library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the cursor position at the point of failure so a caller
// can tell exactly where a stream stopped decoding.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
//		Position(12, 3).
//		Detail("need 16 bits, 5 remaining").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseDecode, 12, 3, "need 16 bits, 5 remaining")
//	err := errors.Overflow(errors.PhaseEncode, v, "value does not fit in 5 bits")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
