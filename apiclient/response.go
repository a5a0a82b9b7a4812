package apiclient

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Response is a response whose status already matched the caller's expectation.
type Response struct {
	StatusCode int
	Header     http.Header

	// Success and Message come from the envelope that every JSON response carries.
	Success bool
	Message string

	// Body is the parsed JSON body, or a null value if the response was not JSON (the API answers
	// some server errors with an HTML page).
	Body ldvalue.Value

	raw []byte
}

func newResponse(status int, header http.Header, data []byte) (*Response, error) {
	r := &Response{
		StatusCode: status,
		Header:     header,
		Body:       ldvalue.Null(),
		raw:        data,
	}
	if len(data) == 0 || !isJSONContentType(header.Get("Content-Type")) {
		return r, nil
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s", ErrMalformedBody, string(data))
	}
	r.Body = ldvalue.Parse(data)
	r.Success = r.Body.GetByKey("success").BoolValue()
	r.Message = r.Body.GetByKey("message").StringValue()
	return r, nil
}

// IsJSON reports whether the response carried a JSON body.
func (r *Response) IsJSON() bool {
	return !r.Body.IsNull()
}

// Raw returns the body exactly as received.
func (r *Response) Raw() []byte {
	return r.raw
}

// Decode unmarshals the JSON body into target.
func (r *Response) Decode(target interface{}) error {
	if !r.IsJSON() {
		return fmt.Errorf("%w: response is not JSON: %s", ErrMalformedBody, string(r.raw))
	}
	if err := json.Unmarshal(r.raw, target); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedBody, err)
	}
	return nil
}

func (r *Response) String() string {
	return fmt.Sprintf("HTTP %d %s", r.StatusCode, string(r.raw))
}

func isJSONContentType(value string) bool {
	mediaType, _, err := mime.ParseMediaType(value)
	return err == nil && mediaType == "application/json"
}
