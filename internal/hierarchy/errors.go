package hierarchy

import (
	"errors"
	"fmt"
)

// Kind names the entity an error refers to.
type Kind string

const (
	KindProject    Kind = "project"
	KindSprint     Kind = "sprint"
	KindTask       Kind = "task"
	KindMember     Kind = "member"
	KindMembership Kind = "membership"
)

// StoreError reports that a read, write or commit against the store failed.
// The transaction it belonged to has been rolled back.
type StoreError struct {
	Op   string // load, create, update, delete, add, remove
	Kind Kind
	ID   uint
	Err  error
}

func (e *StoreError) Error() string {
	switch {
	case e.ID != 0:
		return fmt.Sprintf("hierarchy: %s %s %d: %v", e.Op, e.Kind, e.ID, e.Err)
	case e.Kind != "":
		return fmt.Sprintf("hierarchy: %s %s: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("hierarchy: %s: %v", e.Op, e.Err)
	}
}

func (e *StoreError) Unwrap() error { return e.Err }

// ValidationError reports a caller-supplied field that breaks a domain rule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("hierarchy: invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an id that does not exist in the store, or a cursor
// position that does not exist in the current tree.
type NotFoundError struct {
	Kind Kind
	ID   uint
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("hierarchy: %s not found", e.Kind)
	}
	return fmt.Sprintf("hierarchy: %s %d not found", e.Kind, e.ID)
}

// IsNotFound reports whether err wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStore reports whether err wraps a *StoreError.
func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

// classify passes domain errors through untouched and wraps everything else
// as a StoreError carrying the operation context.
func classify(op string, kind Kind, id uint, err error) error {
	if IsNotFound(err) || IsValidation(err) || IsStore(err) {
		return err
	}
	return &StoreError{Op: op, Kind: kind, ID: id, Err: err}
}
