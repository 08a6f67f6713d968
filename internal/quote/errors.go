package quote

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a fetch produced no result.
type ErrorKind string

const (
	MissingSelection       ErrorKind = "MissingSelection"
	TransportOrServerError ErrorKind = "TransportOrServerError"
	MalformedPayload       ErrorKind = "MalformedPayload"
)

// Messages shown to the user. Transport, status and decode failures share one.
const (
	msgMissingSelection = "Please select a stock symbol"
	msgFetchFailed      = "Error fetching data"
	msgInvalidStructure = "Invalid response structure from server"
)

// FetchError is returned for every failed FetchQuoteAndNews call.
type FetchError struct {
	Kind   ErrorKind
	Status int // HTTP status, 0 when no response was received
	Err    error
}

var (
	ErrMissingSelection = &FetchError{Kind: MissingSelection}
	ErrTransport        = &FetchError{Kind: TransportOrServerError}
	ErrMalformedPayload = &FetchError{Kind: MalformedPayload}
)

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message())
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches any FetchError of the same kind, so errors.Is(err, ErrMalformedPayload) works.
func (e *FetchError) Is(target error) bool {
	t, ok := target.(*FetchError)
	return ok && t.Kind == e.Kind
}

// Message is the single line of text shown to the user.
func (e *FetchError) Message() string {
	switch e.Kind {
	case MissingSelection:
		return msgMissingSelection
	case MalformedPayload:
		return msgInvalidStructure
	default:
		return msgFetchFailed
	}
}

// UserMessage maps any fetch error to its user-facing text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Message()
	}
	return msgFetchFailed
}
