package aiva

import (
	"fmt"
)

// Kind is a classification of error type.
type Kind string

const (
	InvalidInput Kind = "invalid_input"
	RateLimited  Kind = "rate_limited"
	Unavailable  Kind = "unavailable"
	Transport    Kind = "transport"
	Invariant    Kind = "invariant"
)

// ChatError represents errors from the chat provider layer.
type ChatError struct {
	Kind    Kind
	Message string
	Err     error
	// The provider name
	Provider string
	// The upstream status for the Unavailable and RateLimited error kinds
	Status int
}

func (e *ChatError) Error() string {
	switch e.Kind {
	case InvalidInput:
		return fmt.Sprintf("invalid input: %s", e.Message)
	case RateLimited:
		return fmt.Sprintf("rate limited by %s (status %d)", e.Provider, e.Status)
	case Unavailable:
		return fmt.Sprintf("%s unavailable: %s (status %d)", e.Provider, e.Message, e.Status)
	case Transport:
		return fmt.Sprintf("transport error from %s: %s", e.Provider, e.Err)
	case Invariant:
		return fmt.Sprintf("invariant from %s: %s", e.Provider, e.Message)
	default:
		return e.Message
	}
}

// Unwrap allows errors.Is / errors.As to work with wrapped errors.
func (e *ChatError) Unwrap() error {
	return e.Err
}

// Helper constructors
func NewInvalidInputError(msg string) *ChatError {
	return &ChatError{Kind: InvalidInput, Message: msg}
}

func NewRateLimitedError(provider string, status int) *ChatError {
	return &ChatError{Kind: RateLimited, Provider: provider, Status: status}
}

func NewUnavailableError(provider string, status int, body string) *ChatError {
	return &ChatError{Kind: Unavailable, Message: body, Provider: provider, Status: status}
}

func NewTransportError(provider string, err error) *ChatError {
	return &ChatError{Kind: Transport, Err: err, Provider: provider}
}

func NewInvariantError(provider string, msg string) *ChatError {
	return &ChatError{Kind: Invariant, Message: msg, Provider: provider}
}
