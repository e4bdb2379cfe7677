package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the data layer can report.
type Kind int

const (
	// KindValidation means the input shape or range was bad before any mutation.
	KindValidation Kind = iota
	// KindNotFound means a referenced entity id does not exist.
	KindNotFound
	// KindConflict means a uniqueness constraint was violated.
	KindConflict
	// KindInsufficientStock means the requested quantity exceeds available stock.
	KindInsufficientStock
	// KindIO means the store was unreachable or aborted for infrastructure reasons.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindInsufficientStock:
		return "insufficient stock"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the single error type returned across every repository and
// service operation. Entity and Ref identify what the failure is about.
type Error struct {
	Kind   Kind
	Entity string // e.g. "product", "user"
	Ref    string // offending id, name or field
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports bad input for a field of an entity.
func Validation(entity, field, msg string) *Error {
	return &Error{Kind: KindValidation, Entity: entity, Ref: field, Msg: msg}
}

// NotFound reports a missing entity by id or lookup key.
func NotFound(entity, ref string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, Ref: ref, Msg: fmt.Sprintf("%s %q not found", entity, ref)}
}

// Conflict reports a uniqueness violation.
func Conflict(entity, ref, msg string) *Error {
	return &Error{Kind: KindConflict, Entity: entity, Ref: ref, Msg: msg}
}

// InsufficientStock reports a purchase quantity exceeding available stock.
func InsufficientStock(productRef string, requested, available int) *Error {
	return &Error{
		Kind:   KindInsufficientStock,
		Entity: "product",
		Ref:    productRef,
		Msg:    fmt.Sprintf("requested %d exceeds available stock %d for product %q", requested, available, productRef),
	}
}

// IO wraps an infrastructure failure from the store.
func IO(msg string, err error) *Error {
	return &Error{Kind: KindIO, Msg: msg, Err: err}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func IsNotFound(err error) bool          { return IsKind(err, KindNotFound) }
func IsConflict(err error) bool          { return IsKind(err, KindConflict) }
func IsValidation(err error) bool        { return IsKind(err, KindValidation) }
func IsInsufficientStock(err error) bool { return IsKind(err, KindInsufficientStock) }
