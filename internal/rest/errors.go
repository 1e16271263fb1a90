package rest

import (
	"fmt"
	"net/http"

	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

// StatusError reports a non-2xx response. It unwraps to types.ErrFetchFailed
// or types.ErrMutationFailed, and matches types.ErrNotFound on a 404.
type StatusError struct {
	Method  string
	URL     string
	Code    int
	Message string

	kind error
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Code, http.StatusText(e.Code))
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns the error kind.
func (e *StatusError) Unwrap() error {
	return e.kind
}

// Is matches types.ErrNotFound for 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == types.ErrNotFound && e.Code == http.StatusNotFound
}
