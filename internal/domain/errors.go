package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidQuery rejects a lookup before any source is consulted. It is
// the only error surfaced to the caller as a failed call; everything
// downstream is encoded in SourceError / LookupResult.
var ErrInvalidQuery = errors.New("invalid query")

// ErrorKind classifies a source-level failure. Kinds decide retry policy
// and circuit bookkeeping.
type ErrorKind string

const (
	// ErrKindTimeout is a call that exceeded its per-source budget.
	ErrKindTimeout ErrorKind = "TIMEOUT"
	// ErrKindUnreachable covers network/transport failures and 5xx responses.
	ErrKindUnreachable ErrorKind = "UNREACHABLE"
	// ErrKindRateLimited is an explicit throttle response (HTTP 429).
	ErrKindRateLimited ErrorKind = "RATE_LIMITED"
	// ErrKindMalformedResponse is a reply the adapter could not decode.
	ErrKindMalformedResponse ErrorKind = "MALFORMED_RESPONSE"
	// ErrKindNotFound is an explicit negative response: the source was
	// reached and has no entry for the query. Distinct from an empty
	// successful result and never fatal to the lookup.
	ErrKindNotFound ErrorKind = "NOT_FOUND"
	// ErrKindCircuitOpen is a preemptive failure: the source's breaker is
	// open and no call was attempted.
	ErrKindCircuitOpen ErrorKind = "CIRCUIT_OPEN"
)

func (k ErrorKind) String() string { return string(k) }

func (k ErrorKind) IsValid() bool {
	switch k {
	case ErrKindTimeout, ErrKindUnreachable, ErrKindRateLimited,
		ErrKindMalformedResponse, ErrKindNotFound, ErrKindCircuitOpen:
		return true
	}
	return false
}

// Retryable reports whether a failure of this kind is transient enough
// to retry within the same lookup.
func (k ErrorKind) Retryable() bool {
	switch k {
	case ErrKindTimeout, ErrKindUnreachable, ErrKindRateLimited:
		return true
	}
	return false
}

// SourceError is the terminal failure of one adapter invocation.
type SourceError struct {
	Source string
	Kind   ErrorKind
	Err    error
}

func NewSourceError(source string, kind ErrorKind, err error) *SourceError {
	return &SourceError{Source: source, Kind: kind, Err: err}
}

func (e *SourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Source, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Kind, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// AsSourceError unwraps err into a *SourceError, or wraps it with the
// given fallback source and kind when it is not one already.
func AsSourceError(err error, source string, fallback ErrorKind) *SourceError {
	var se *SourceError
	if errors.As(err, &se) {
		return se
	}
	return NewSourceError(source, fallback, err)
}
