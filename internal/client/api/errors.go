package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNetwork means no response reached the client at all.
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized means the backend rejected the request as
	// unauthenticated or forbidden. Callers must clear the session
	// before propagating it.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrServer covers every other non-2xx response.
	ErrServer = errors.New("server error")

	// ErrDecode means the response body did not parse to the expected shape.
	ErrDecode = errors.New("unexpected response body")
)

// ValidationError carries field-level messages from a rejected request.
// The Fields map uses the same field names the forms use, so view
// controllers can merge server messages with client-side ones directly.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation error"
	}
	parts := make([]string, 0, len(e.Fields))
	for k, v := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", k, v))
	}
	sort.Strings(parts)
	return "validation error: " + strings.Join(parts, "; ")
}

// AsValidation returns the ValidationError wrapped in err, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
