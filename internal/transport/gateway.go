// Package transport sends requests to the advice service.
//
// A Gateway owns one base endpoint and one timeout ceiling. Every call passes
// an outbound stage (logging and request tagging) and, on failure, an inbound
// stage that classifies the error in place before it is returned. The
// gateway never retries; retry policy belongs to the caller.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries the per-call tag stamped by the outbound stage.
const RequestIDHeader = "X-Request-ID"

// MaxResponseSize caps the body read from the service.
const MaxResponseSize = 10 * 1024 * 1024

// Response is a successful (2xx) raw response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("error parsing response: %w", err)
	}
	return nil
}

// RequestInterceptor runs before a request is sent. It may add headers and
// log, but must not change the payload.
type RequestInterceptor func(req *http.Request)

// ErrorInterceptor runs on every failed call and may rewrite the error.
type ErrorInterceptor func(e *Error) *Error

// Gateway sends requests relative to a fixed base URL.
type Gateway struct {
	baseURL    string
	client     *http.Client
	logger     *slog.Logger
	onRequest  []RequestInterceptor
	onError    []ErrorInterceptor
	onResponse []func(resp *http.Response, elapsed time.Duration)
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the underlying HTTP client. Its Timeout is
// overwritten by the gateway's timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) {
		g.client = c
	}
}

// WithLogger sets the logger used by the default interceptors.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = l
	}
}

// WithRequestInterceptor appends an outbound interceptor.
func WithRequestInterceptor(i RequestInterceptor) Option {
	return func(g *Gateway) {
		g.onRequest = append(g.onRequest, i)
	}
}

// WithErrorInterceptor appends an inbound error interceptor. It runs after
// classification.
func WithErrorInterceptor(i ErrorInterceptor) Option {
	return func(g *Gateway) {
		g.onError = append(g.onError, i)
	}
}

// New creates a Gateway for baseURL with the given timeout ceiling.
func New(baseURL string, timeout time.Duration, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  SharedHTTPClient(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	client := *g.client
	client.Timeout = timeout
	g.client = &client

	// Default stages go first so user interceptors see tagged requests and
	// classified errors.
	g.onRequest = append([]RequestInterceptor{g.tagRequest, g.logRequest}, g.onRequest...)
	g.onError = append([]ErrorInterceptor{Classify, g.logError}, g.onError...)
	g.onResponse = append(g.onResponse, g.logResponse)
	return g
}

// BaseURL returns the endpoint the gateway is bound to.
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// Timeout returns the gateway's timeout ceiling.
func (g *Gateway) Timeout() time.Duration {
	return g.client.Timeout
}

// Send issues method on path with an optional JSON body. Non-2xx statuses and
// transport failures are returned as a classified *Error.
func (g *Gateway) Send(ctx context.Context, method, path string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("error marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for _, i := range g.onRequest {
		i(req)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, g.fail(&Error{Method: method, Path: path, Message: err.Error(), Err: err})
	}
	defer resp.Body.Close()

	for _, fn := range g.onResponse {
		fn(resp, time.Since(start))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, g.fail(&Error{Method: method, Path: path, Status: resp.StatusCode, Message: err.Error(), Err: err})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, g.fail(&Error{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Body:    data,
			Message: fmt.Sprintf("request failed with status code %d", resp.StatusCode),
		})
	}

	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// Call sends a request and decodes the JSON response into Resp.
func Call[Resp any](ctx context.Context, g *Gateway, method, path string, body any) (*Resp, error) {
	resp, err := g.Send(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	var out Resp
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) fail(e *Error) error {
	for _, i := range g.onError {
		e = i(e)
	}
	return e
}

func (g *Gateway) tagRequest(req *http.Request) {
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
}

func (g *Gateway) logRequest(req *http.Request) {
	g.logger.Debug("api request",
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", req.Header.Get(RequestIDHeader))
}

func (g *Gateway) logResponse(resp *http.Response, elapsed time.Duration) {
	g.logger.Debug("api response",
		"method", resp.Request.Method,
		"path", resp.Request.URL.Path,
		"status", resp.StatusCode,
		"duration", elapsed,
		"request_id", resp.Request.Header.Get(RequestIDHeader))
}

func (g *Gateway) logError(e *Error) *Error {
	g.logger.Warn("api error",
		"method", e.Method,
		"path", e.Path,
		"status", e.Status,
		"kind", e.Kind.String(),
		"error", e.Message)
	return e
}

// SharedHTTPClient returns an HTTP client with connection pooling.
func SharedHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{Transport: transport}
}
