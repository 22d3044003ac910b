package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// As delegates to the standard library so callers need only this package.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Is delegates to the standard library so callers need only this package.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// Phase indicates which boundary operation the error occurred in
type Phase string

const (
	PhaseCreate  Phase = "create"  // document creation
	PhaseDestroy Phase = "destroy" // document teardown
	PhaseConfig  Phase = "config"  // actor configuration
	PhaseMutate  Phase = "mutate"  // map/list writes
	PhaseRead    Phase = "read"    // map/list reads
	PhaseCommit  Phase = "commit"  // change recording
	PhaseSave    Phase = "save"    // document encoding
	PhaseLoad    Phase = "load"    // document decoding
	PhaseMerge   Phase = "merge"   // cross-document merge
	PhaseCombine Phase = "combine" // result aggregation
	PhaseStore   Phase = "store"   // persistent document store
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidActor Kind = "invalid_actor"
	KindInvalidKey   Kind = "invalid_key"
	KindInvalidValue Kind = "invalid_value"
	KindObjNotFound  Kind = "obj_not_found"
	KindDocNotFound  Kind = "doc_not_found"
	KindTypeMismatch Kind = "type_mismatch"
	KindOutOfBounds  Kind = "out_of_bounds"
	KindInvalidData  Kind = "invalid_data"
	KindCorrupt      Kind = "corrupt"
	KindNotFound     Kind = "not_found"
	KindUnsupported  Kind = "unsupported"
	KindInvalidInput Kind = "invalid_input"
	KindClosed       Kind = "closed"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Obj    string
	Key    string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Obj != "" || e.Key != "" {
		b.WriteString(" at ")
		b.WriteString(e.Obj)
		if e.Key != "" {
			if e.Obj != "" {
				b.WriteByte('.')
			}
			b.WriteString(e.Key)
		}
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Obj sets the object reference the error concerns
func (b *Builder) Obj(obj string) *Builder {
	b.err.Obj = obj
	return b
}

// Key sets the map key or list position the error concerns
func (b *Builder) Key(key string) *Builder {
	b.err.Key = key
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidActor creates an invalid actor identity error
func InvalidActor(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidActor,
		Detail: detail,
	}
}

// InvalidKey creates an invalid map key error
func InvalidKey(phase Phase, obj, key, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidKey,
		Obj:    obj,
		Key:    key,
		Detail: detail,
	}
}

// InvalidValue creates an invalid value error
func InvalidValue(phase Phase, obj, key string, value any, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidValue,
		Obj:    obj,
		Key:    key,
		Value:  value,
		Detail: detail,
	}
}

// ObjNotFound creates an unknown object reference error
func ObjNotFound(phase Phase, obj string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindObjNotFound,
		Obj:    obj,
		Detail: "object not found",
	}
}

// DocNotFound creates an unknown document handle error
func DocNotFound(phase Phase, handle uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDocNotFound,
		Detail: fmt.Sprintf("no document for handle %d", handle),
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, obj, key, got, want string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Obj:    obj,
		Key:    key,
		Detail: fmt.Sprintf("got %s, want %s", got, want),
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, obj string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Obj:    obj,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// Corrupt creates a corrupt data error
func Corrupt(phase Phase, detail string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindCorrupt,
		Detail: detail,
		Cause:  cause,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Closed creates an error for operations on a closed session or store
func Closed(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", what),
	}
}

// OperationFailed wraps an engine-level failure message surfaced by a result
func OperationFailed(phase Phase, message string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: message,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
