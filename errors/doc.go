// Package errors provides structured error types for the meld library.
//
// Errors are categorized by Phase (which boundary operation failed) and Kind
// (error category). The Error type includes context: the object reference,
// the map key or list position, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseMutate, errors.KindInvalidValue).
//		Obj("_root").
//		Key("title").
//		Detail("value kind %s is not storable", kind).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ObjNotFound(errors.PhaseRead, objID.String())
//	err := errors.InvalidActor(errors.PhaseConfig, "identity must be non-empty")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
