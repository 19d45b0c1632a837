package domain

import (
	"errors"
	"strings"
)

// UnknownErrorMessage is recorded when a failure carries no message
const UnknownErrorMessage = "An unknown error occurred."

// Sentinel errors for domain operations
var (
	// ErrMissingAPIKey indicates no provider API key was configured
	ErrMissingAPIKey = errors.New("provider API key is not configured")

	// ErrUnknownKind indicates a type filter that matches no provider kind
	ErrUnknownKind = errors.New("unknown title type")
)

// ProviderError is a negative response from the provider, e.g. "Movie not found!"
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}

// TransportError means the request could not be completed
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrorMessage flattens any failure into the single message shown to the user
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return err.Error()
	}
	return UnknownErrorMessage
}
