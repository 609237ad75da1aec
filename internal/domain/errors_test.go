package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKind_Retryable(t *testing.T) {
	t.Parallel()

	retryable := map[ErrorKind]bool{
		ErrKindTimeout:           true,
		ErrKindUnreachable:       true,
		ErrKindRateLimited:       true,
		ErrKindMalformedResponse: false,
		ErrKindNotFound:          false,
		ErrKindCircuitOpen:       false,
	}

	for kind, want := range retryable {
		if got := kind.Retryable(); got != want {
			t.Errorf("%s.Retryable() = %v, want %v", kind, got, want)
		}
	}
}

func TestSourceError_Unwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("connection refused")
	se := NewSourceError("freedict", ErrKindUnreachable, fmt.Errorf("request failed: %w", inner))

	if !errors.Is(se, inner) {
		t.Error("SourceError should unwrap to the inner error")
	}

	var target *SourceError
	wrapped := fmt.Errorf("call: %w", se)
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As should find the SourceError through wrapping")
	}
	if target.Kind != ErrKindUnreachable {
		t.Errorf("Kind = %s, want %s", target.Kind, ErrKindUnreachable)
	}
}

func TestAsSourceError(t *testing.T) {
	t.Parallel()

	se := NewSourceError("wikipedia", ErrKindNotFound, nil)
	if got := AsSourceError(fmt.Errorf("wrap: %w", se), "other", ErrKindUnreachable); got != se {
		t.Error("existing SourceError should be returned as-is")
	}

	plain := errors.New("boom")
	got := AsSourceError(plain, "datamuse", ErrKindUnreachable)
	if got.Source != "datamuse" || got.Kind != ErrKindUnreachable {
		t.Errorf("fallback wrap = %+v", got)
	}
	if !errors.Is(got, plain) {
		t.Error("fallback wrap should keep the original error")
	}
}
