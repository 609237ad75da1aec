package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/heartmarshall/quickdef/internal/domain"
)

// ClassifyTransportError maps a transport-level error from an outbound
// call to a SourceError. Deadline/timeout conditions become Timeout,
// everything else Unreachable.
func ClassifyTransportError(source string, err error) *domain.SourceError {
	kind := domain.ErrKindUnreachable

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = domain.ErrKindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = domain.ErrKindTimeout
	}

	return domain.NewSourceError(source, kind, err)
}

// ClassifyStatus maps a non-2xx HTTP status to a SourceError, or nil for
// success statuses. 404 is an explicit negative answer, 429 a throttle,
// anything else counts as the source being unreachable.
func ClassifyStatus(source string, status int) *domain.SourceError {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		return domain.NewSourceError(source, domain.ErrKindNotFound, fmt.Errorf("status %d", status))
	case status == http.StatusTooManyRequests:
		return domain.NewSourceError(source, domain.ErrKindRateLimited, fmt.Errorf("status %d", status))
	default:
		return domain.NewSourceError(source, domain.ErrKindUnreachable, fmt.Errorf("unexpected status %d", status))
	}
}
