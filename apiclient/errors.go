package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMalformedBody means the API declared a JSON response but sent something that does not parse.
	ErrMalformedBody = errors.New("malformed JSON response body")

	// ErrNoToken means an operation that requires authentication was attempted for an actor that
	// has never been issued tokens.
	ErrNoToken = errors.New("no access token")
)

// StatusError is returned by Client.Execute when the response status is not the one the caller
// expected. It carries everything needed to understand the failure without rerunning the request.
type StatusError struct {
	Method   string
	Path     string
	Expected int
	Actual   int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: expected HTTP status %s but got %s; response body: %s",
		e.Method, e.Path, statusText(e.Expected), statusText(e.Actual), e.Body)
}

func statusText(status int) string {
	if text := http.StatusText(status); text != "" {
		return fmt.Sprintf("%d %s", status, text)
	}
	return fmt.Sprint(status)
}
