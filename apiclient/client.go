// Package apiclient executes requests against the order API on behalf of an actor or anonymously.
//
// A Client holds no per-actor state: the token to use is passed with each request. This means one
// Client can be shared by any number of concurrently running scenarios.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/orderapi/contract-tests/framework"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout = time.Second * 30
	bearerPrefix   = "Bearer "
)

// Config contains the parameters for NewClient.
type Config struct {
	// BaseURL is the API root, including the /api path, e.g. "https://example.com/api".
	BaseURL string

	// Timeout bounds each request. Zero means 30 seconds.
	Timeout time.Duration

	// RequestsPerSecond paces requests when it is greater than zero. This keeps a test run from
	// hammering a shared API; it is not meant for generating load.
	RequestsPerSecond float64

	// Logger receives a line for every request and response. Nil means no logging.
	Logger framework.Logger

	// HTTPClient replaces the default HTTP client if set. Timeout is ignored in that case.
	HTTPClient *http.Client
}

// Client sends requests to the order API.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  framework.Logger
}

// Request describes one call to the API.
type Request struct {
	Method string
	Path   string

	// Body is encoded as JSON. It is ignored for GET and DELETE.
	Body interface{}

	// Token is sent in the Authorization header if not empty.
	Token string

	// ExpectedStatus is the status the caller requires. Any other status makes Execute return a
	// *StatusError.
	ExpectedStatus int
}

func NewClient(config Config) *Client {
	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := config.Logger
	if logger == nil {
		logger = framework.NullLogger()
	}
	c := &Client{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
	if config.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}
	return c
}

// BaseURL returns the API root the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WithLogger returns a client that shares this client's connection pool and rate limiter but
// logs to a different logger. The test scope uses this to capture request logs per test.
func (c *Client) WithLogger(logger framework.Logger) *Client {
	if logger == nil {
		logger = framework.NullLogger()
	}
	c1 := *c
	c1.logger = logger
	return &c1
}

// Execute sends the request and checks that the response status is the expected one.
//
// A status mismatch is reported as a *StatusError before the body is interpreted, so later checks
// never run against a response of the wrong kind. Transport failures and undecodable JSON are
// returned as errors; nothing is retried.
func (c *Client) Execute(ctx context.Context, req Request) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var body io.Reader
	var data []byte
	if req.Body != nil && methodHasBody(req.Method) {
		var err error
		if data, err = json.Marshal(req.Body); err != nil {
			return nil, fmt.Errorf("%s %s: encoding request body: %w", req.Method, req.Path, err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if data != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	auth := "anonymous"
	if req.Token != "" {
		httpReq.Header.Set("Authorization", authorizationValue(req.Token))
		auth = "authorized"
	}
	c.logger.Printf("Sending %s %s (%s): %s", req.Method, req.Path, auth, string(data))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	respData, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("%s %s: reading response body: %w", req.Method, req.Path, err)
	}
	c.logger.Printf("Received %d for %s %s: %s", resp.StatusCode, req.Method, req.Path, string(respData))

	if resp.StatusCode != req.ExpectedStatus {
		return nil, &StatusError{
			Method:   req.Method,
			Path:     req.Path,
			Expected: req.ExpectedStatus,
			Actual:   resp.StatusCode,
			Body:     string(respData),
		}
	}

	r, err := newResponse(resp.StatusCode, resp.Header, respData)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	return r, nil
}

// methodHasBody reports whether requests with this method carry a body. DELETE is excluded even
// though HTTP allows it, because the API's DELETE endpoints reject bodies.
func methodHasBody(method string) bool {
	switch method {
	case http.MethodGet, http.MethodDelete, http.MethodHead:
		return false
	default:
		return true
	}
}

// The API issues access tokens that already start with "Bearer ", and expects them back verbatim.
func authorizationValue(token string) string {
	if strings.HasPrefix(token, bearerPrefix) {
		return token
	}
	return bearerPrefix + token
}
