// Package errors provides structured error types for the cl-runtime library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes context: the queried object, the attribute name,
// the native entry point, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseQuery, errors.KindStatus).
//		Object(target).
//		Param("CL_DEVICE_NAME").
//		Op("GetInfo").
//		Cause(clruntime.InvalidValue).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.BufferTooSmall("CL_DEVICE_MAX_COMPUTE_UNITS", 4, 2)
//	err := errors.InvalidHandle(errors.PhaseLifecycle, "context(0x0)")
//
// Native status codes travel as the Cause, so clruntime.StatusOf recovers
// them from any wrapped error. All errors support errors.Is/As.
package errors
