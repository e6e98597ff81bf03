package inference

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/clauseguard/backend/internal/core/domain"
	"github.com/clauseguard/backend/internal/infrastructure/resilience"
)

// HTTPStatusError carries the status and a bounded slice of the body for a
// non-2xx backend response.
type HTTPStatusError struct {
	Operation  string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "backend status error"
	}
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("%s status: %s", e.Operation, e.Status)
	}
	return fmt.Sprintf("%s status: %s: %s", e.Operation, e.Status, strings.TrimSpace(e.Body))
}

// NewStatusError drains up to 2KiB of the response body into the error.
func NewStatusError(operation string, resp *http.Response) *HTTPStatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return &HTTPStatusError{
		Operation:  operation,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(body)),
	}
}

// TranslateTransportError converts http.Client failures into the backend
// error taxonomy. Deadline expiry means the connection was torn down by the
// per-call timeout.
func TranslateTransportError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.WrapError(domain.ErrBackendTimeout, operation, err)
	}
	return domain.WrapError(domain.ErrBackendTransport, operation, err)
}

// ClassifyBackendError decides breaker accounting. Timeouts, transport
// failures and server-side statuses count against the breaker; client-side
// statuses and canceled contexts do not.
func ClassifyBackendError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) {
		return resilience.ErrorClassification{RecordFailure: false}
	}
	if domain.IsKind(err, domain.ErrBackendTimeout) || domain.IsKind(err, domain.ErrBackendTransport) {
		return resilience.ErrorClassification{RecordFailure: true}
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500 {
			return resilience.ErrorClassification{RecordFailure: true}
		}
		return resilience.ErrorClassification{RecordFailure: false}
	}
	return resilience.ErrorClassification{RecordFailure: true}
}
