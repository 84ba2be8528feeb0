package network

import "errors"

var (
	ErrUnknownOperation = errors.New("unknown contract operation")
	ErrArgumentMismatch = errors.New("argument mismatch")
	ErrInvalidResponse  = errors.New("invalid result")
	ErrAccountMismatch  = errors.New("account address does not match signing key")

	errEmptyResponse = errors.New("empty response")
)

const (
	elrondStatusPending = "pending"
	elrondStatusSuccess = "success"
)
