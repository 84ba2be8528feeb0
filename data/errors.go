package data

import (
	"errors"
	"fmt"
)

var ErrMissingField = errors.New("missing field")

// SubmissionError - the operation call was not accepted by the network
type SubmissionError struct {
	Operation string
	Err       error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit %s: %v", e.Operation, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// ConfirmationError - the call was submitted but its final status could not be obtained
type ConfirmationError struct {
	TransactionHash string
	Err             error
}

func (e *ConfirmationError) Error() string {
	return fmt.Sprintf("confirm %s: %v", e.TransactionHash, e.Err)
}

func (e *ConfirmationError) Unwrap() error {
	return e.Err
}

// ConfigurationError - a static setting is absent or invalid; fatal at startup
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
