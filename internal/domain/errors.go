package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport layer
type Kind string

const (
	KindInvalidInput     Kind = "INVALID_INPUT"
	KindUnknownReference Kind = "UNKNOWN_REFERENCE"
	KindNotFound         Kind = "NOT_FOUND"
	KindConflict         Kind = "CONFLICT"
	KindOutOfStock       Kind = "OUT_OF_STOCK"
	KindAlreadyClosed    Kind = "ALREADY_CLOSED"
	KindUnavailable      Kind = "UNAVAILABLE"
	KindInternal         Kind = "INTERNAL"
)

// Error is a classified application error
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain.
// Unclassified errors are internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err is classified as kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func NewInvalidInputError(msg string, err error) error {
	return &Error{Kind: KindInvalidInput, Message: msg, Err: err}
}

func NewUnknownReferenceError(msg string) error {
	return &Error{Kind: KindUnknownReference, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func NewConflictError(msg string, err error) error {
	return &Error{Kind: KindConflict, Message: msg, Err: err}
}

func NewOutOfStockError(gameID int64) error {
	return &Error{Kind: KindOutOfStock, Message: fmt.Sprintf("game %d has no copies available", gameID)}
}

func NewAlreadyClosedError(rentalID int64) error {
	return &Error{Kind: KindAlreadyClosed, Message: fmt.Sprintf("rental %d is already closed", rentalID)}
}

func NewUnavailableError(err error) error {
	return &Error{Kind: KindUnavailable, Message: "store unavailable", Err: err}
}
