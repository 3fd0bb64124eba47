// Package errors defines the typed error kinds surfaced by the catalog
// services, together with predicates handlers use to map them to HTTP
// statuses.
package errors

import (
	"errors"
	"fmt"
)

type errorKind int

const (
	kindResourceNotFound errorKind = iota
	kindEmptyCatalog
	kindTimeout
	kindValidation
)

type serviceError struct {
	kind errorKind
	msg  string
	err  error
}

func (e *serviceError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *serviceError) Unwrap() error {
	return e.err
}

// NewResourceNotFoundError reports that a record with the given id does not
// exist in the store.
func NewResourceNotFoundError(resource string, id int64) error {
	return &serviceError{kind: kindResourceNotFound, msg: fmt.Sprintf("%s %d not found", resource, id)}
}

// NewEmptyCatalogError reports an aggregation over zero records.
func NewEmptyCatalogError() error {
	return &serviceError{kind: kindEmptyCatalog, msg: "catalog is empty"}
}

// NewTimeoutError wraps a store call that exceeded its deadline.
func NewTimeoutError(op string, err error) error {
	return &serviceError{kind: kindTimeout, msg: fmt.Sprintf("%s timed out", op), err: err}
}

// NewValidationError reports a request body that failed validation.
func NewValidationError(msg string) error {
	return &serviceError{kind: kindValidation, msg: msg}
}

func isKind(err error, kind errorKind) bool {
	var se *serviceError
	if errors.As(err, &se) {
		return se.kind == kind
	}
	return false
}

func IsResourceNotFoundError(err error) bool { return isKind(err, kindResourceNotFound) }

func IsEmptyCatalogError(err error) bool { return isKind(err, kindEmptyCatalog) }

func IsTimeoutError(err error) bool { return isKind(err, kindTimeout) }

func IsValidationError(err error) bool { return isKind(err, kindValidation) }
