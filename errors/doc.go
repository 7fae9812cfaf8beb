// Package errors provides structured error types for the dispatch library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the offending selector, range index, entry name and,
// for refusals declared in a dispatch table, the host result code.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConfigure, errors.KindMissingHandler).
//		Range(1).
//		Entry("GetCodecInfo").
//		Detail("no local handler").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Unsupported(sel)
//	err := errors.Refused(sel, "Register", errors.CodeComponentDontRegister)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
