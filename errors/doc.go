// Package errors provides structured error types for the buffer layout engine.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go/WGSL type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
//		Path("params", "color").
//		GoType("float64").
//		WGSLType("vec4f").
//		Detail("expected 4 components").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.FieldUnknown(errors.PhaseDecode, path)
//	err := errors.ComponentCountMismatch(errors.PhaseEncode, path, "vec4f", 3, 4)
//
// All errors implement the standard error interface and support errors.Is/As.
// Matching against an Error with an empty Phase compares the Kind only:
//
//	errors.Is(err, &errors.Error{Kind: errors.KindFieldUnknown})
package errors
