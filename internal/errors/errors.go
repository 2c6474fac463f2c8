// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// Sentinels returned by the dispatch entry point.
var (
	ErrNoCampaigns        = errors.New("no campaigns found")
	ErrDispatchInProgress = errors.New("dispatch already in progress")
)

// DatabaseError wraps a driver-level failure with the context of the query
// that produced it.
type DatabaseError struct {
	Context string
	Err     error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("failed to execute query: %s: %v", e.Context, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// Helper constructor
func NewDatabaseError(context string, err error) error {
	return &DatabaseError{Context: context, Err: err}
}

// EmailSendingError wraps a provider rejection or transport failure.
type EmailSendingError struct {
	Message string
	Err     error
}

func (e *EmailSendingError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *EmailSendingError) Unwrap() error { return e.Err }

func NewEmailSendingError(message string, err error) error {
	return &EmailSendingError{Message: message, Err: err}
}
