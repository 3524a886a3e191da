package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ati-intranet/portal/pkg/serrors"
)

var (
	ErrUnauthorized = serrors.NewError("UPSTREAM_UNAUTHORIZED", "session expired or invalid", "Errors.Unauthorized")
	ErrForbidden    = serrors.NewError("UPSTREAM_FORBIDDEN", "access denied", "Errors.AccessDenied")
	ErrNotFound     = serrors.NewError("UPSTREAM_NOT_FOUND", "not found", "Errors.NotFound")
	ErrUnavailable  = serrors.NewError("UPSTREAM_UNAVAILABLE", "Cannot connect to server. Please ensure the API is running.", "Errors.Unavailable")
)

// StatusError is returned for every non-2xx upstream response.
// It unwraps to ErrUnauthorized, ErrForbidden or ErrNotFound where applicable.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s %s: status %d", e.Method, e.Path, e.Status)
}

func (e *StatusError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

// Message extracts a human readable message from a JSON error body, if any.
func (e *StatusError) Message() string {
	var body struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal([]byte(e.Body), &body); err != nil {
		return ""
	}
	if len(body.Message) > 0 {
		var s string
		if err := json.Unmarshal(body.Message, &s); err == nil {
			return s
		}
		var list []string
		if err := json.Unmarshal(body.Message, &list); err == nil {
			return strings.Join(list, "; ")
		}
	}
	return body.Error
}
