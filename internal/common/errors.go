package common

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain failure so handlers can map it to a response
// without inspecting error strings.
type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindNotFound
	KindConflict
	KindInUse
	KindValidation
)

// DomainError carries the failure kind plus enough context (entity, id, reason)
// for the caller to react. Store-level errors are wrapped, never surfaced raw.
type DomainError struct {
	Kind   ErrorKind
	Entity string
	ID     string
	Reason string
	Err    error
}

func (e *DomainError) Error() string {
	switch {
	case e.Reason != "" && e.ID != "":
		return fmt.Sprintf("%s %s: %s", e.Entity, e.ID, e.Reason)
	case e.Reason != "":
		return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Entity, e.Err)
	default:
		return e.Entity
	}
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NotFoundError reports that a referenced entity does not exist.
func NotFoundError(entity, id string) *DomainError {
	return &DomainError{Kind: KindNotFound, Entity: entity, ID: id, Reason: "not found"}
}

// ConflictError reports that a resource is unavailable: occupied table,
// overlapping reservation, capacity exceeded.
func ConflictError(entity, reason string) *DomainError {
	return &DomainError{Kind: KindConflict, Entity: entity, Reason: reason}
}

// InUseError reports a deletion blocked by a referencing entity.
func InUseError(entity, reason string) *DomainError {
	return &DomainError{Kind: KindInUse, Entity: entity, Reason: reason}
}

// ValidationError reports malformed input, caught before any write.
func ValidationError(field, reason string) *DomainError {
	return &DomainError{Kind: KindValidation, Entity: field, Reason: reason}
}

// UnexpectedError wraps a store-level failure under a stable operation name.
func UnexpectedError(op string, err error) *DomainError {
	return &DomainError{Kind: KindUnexpected, Entity: op, Err: err}
}

// KindOf returns the kind of err, or KindUnexpected for errors outside the
// taxonomy.
func KindOf(err error) ErrorKind {
	var derr *DomainError
	if errors.As(err, &derr) {
		return derr.Kind
	}
	return KindUnexpected
}

func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
func IsInUse(err error) bool      { return KindOf(err) == KindInUse }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
