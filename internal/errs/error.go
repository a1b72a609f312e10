package errs

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("account is not verified")
	ErrForbidden          = errors.New("forbidden")
	ErrAlreadyExists      = errors.New("already registered")
	ErrSamePassword       = errors.New("new password must differ from the current one")

	// slip state errors: terminal for the call, the caller must not
	// retry without changing the request
	ErrAlreadySubmitted = errors.New("slip is already submitted")
	ErrEmptySlip        = errors.New("slip has no items")
	ErrSlipNotEditable  = errors.New("slip is not editable")
	ErrTooManyDrafts    = errors.New("too many open draft slips")

	// ErrRetryable marks transient storage failures (lock wait
	// timeout, serialization failure) that are safe to retry.
	ErrRetryable = errors.New("temporary storage failure")
)

// AccountLockedError rejects authentication until Until; the
// remaining wait time is part of the user-visible message.
type AccountLockedError struct {
	Until time.Time
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account is locked, try again in %d minutes", e.RemainingMinutes())
}

func (e *AccountLockedError) RemainingMinutes() int {
	m := int(time.Until(e.Until).Minutes()) + 1
	if m < 1 {
		m = 1
	}
	return m
}

// AttemptsError carries the remaining attempt count after a failed
// authentication that did not yet lock the account.
type AttemptsError struct {
	Remaining int
}

func (e *AttemptsError) Error() string {
	return fmt.Sprintf("invalid credentials, %d attempts remaining", e.Remaining)
}

func (e *AttemptsError) Unwrap() error { return ErrInvalidCredentials }

// AlreadyExistsError names the user field that collided on
// registration, so the response can say which one to change.
type AlreadyExistsError struct {
	Field string
}

func (e *AlreadyExistsError) Error() string {
	return e.Field + " is already registered"
}

func (e *AlreadyExistsError) Unwrap() error { return ErrAlreadyExists }

type BookNotFoundError struct {
	BookID int64
}

func (e *BookNotFoundError) Error() string {
	return fmt.Sprintf("book %d not found", e.BookID)
}

func (e *BookNotFoundError) Unwrap() error { return ErrNotFound }

// InsufficientStockError aborts the whole submission: no partial
// fulfillment of a slip.
type InsufficientStockError struct {
	BookID    int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for book %d: requested %d, available %d",
		e.BookID, e.Requested, e.Available)
}
