package makeservice

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DecodeError is returned when a response payload fails schema
// validation. It carries the full issue list verbatim.
type DecodeError struct {
	Message string
	Issues  []Issue
}

func (e *DecodeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if len(e.Issues) == 0 {
		return e.Message
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		if len(issue.Path) > 0 {
			parts[i] = fmt.Sprintf("%s: %s", strings.Join(issue.Path, "."), issue.Message)
		} else {
			parts[i] = issue.Message
		}
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(parts, "; "))
}

// TimeoutError is returned when a service call exceeds its configured
// timeout. The in-flight transport call is cancelled through the
// request context.
type TimeoutError struct {
	URL     string
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out after %dms", e.URL, e.Elapsed.Milliseconds())
}

// Unwrap lets callers match the timeout with
// errors.Is(err, context.DeadlineExceeded).
func (e *TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// InvalidMethodError is returned synchronously when a method outside
// the fixed supported verb set is requested.
type InvalidMethodError struct {
	Method string
}

func (e *InvalidMethodError) Error() string {
	return fmt.Sprintf("unsupported HTTP method %q", e.Method)
}
