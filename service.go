package makeservice

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// supportedMethods is the fixed, enumerable verb set a Service exposes.
// Anything outside it fails loudly instead of silently dispatching.
var supportedMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodOptions: true,
	http.MethodConnect: true,
}

// HeadersFunc is a dynamic header source resolved once per call.
type HeadersFunc func(ctx context.Context) (HeaderSource, error)

// Service is a factory for requests against one base URL with shared
// headers, transformers and timeout. It is immutable after construction
// and safe for concurrent use: every call builds its own request state.
type Service struct {
	baseURL             string
	headers             []HeaderSource
	headersFunc         HeadersFunc
	client              HTTPClient
	timeout             time.Duration
	requestTransformer  RequestTransformer
	responseTransformer ResponseTransformer
	trace               TraceFunc
}

// Option configures a Service.
type Option func(*Service)

// WithHeaders adds a shared header source applied below per-call
// headers (per-call wins).
func WithHeaders(source HeaderSource) Option {
	return func(s *Service) {
		s.headers = append(s.headers, source)
	}
}

// WithHeadersFunc sets a dynamic header source, resolved on every call
// before merging.
func WithHeadersFunc(fn HeadersFunc) Option {
	return func(s *Service) {
		s.headersFunc = fn
	}
}

// WithClient sets the transport collaborator. Defaults to
// http.DefaultClient.
func WithClient(client HTTPClient) Option {
	return func(s *Service) {
		s.client = client
	}
}

// WithTimeout bounds every call. On expiry the call fails with a
// *TimeoutError and the in-flight transport call is cancelled through
// the request context.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.timeout = timeout
	}
}

// WithRequestTransformer sets a transformer applied to the outgoing
// request descriptor before headers are merged.
func WithRequestTransformer(fn RequestTransformer) Option {
	return func(s *Service) {
		s.requestTransformer = fn
	}
}

// WithResponseTransformer sets a transformer applied to the
// TypedResponse after it is produced.
func WithResponseTransformer(fn ResponseTransformer) Option {
	return func(s *Service) {
		s.responseTransformer = fn
	}
}

// WithTrace sets a shared trace hook, used when a call does not supply
// its own.
func WithTrace(fn TraceFunc) Option {
	return func(s *Service) {
		s.trace = fn
	}
}

// New creates a Service for the given base URL.
func New(baseURL string, opts ...Option) *Service {
	s := &Service{baseURL: baseURL}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestOption configures one call.
type RequestOption func(*RequestOptions)

// Body sets the request body. JSON-like values are serialized; binary
// payloads pass through.
func Body(body any) RequestOption {
	return func(o *RequestOptions) {
		o.Body = body
	}
}

// Query sets the query input for the call.
func Query(query any) RequestOption {
	return func(o *RequestOptions) {
		o.Query = query
	}
}

// Params sets the path parameter substitutions for the call.
func Params(params map[string]any) RequestOption {
	return func(o *RequestOptions) {
		o.Params = params
	}
}

// Headers adds a per-call header source, merged above the service's
// shared headers.
func Headers(source HeaderSource) RequestOption {
	return func(o *RequestOptions) {
		o.Headers = append(o.Headers, source)
	}
}

// Trace sets a per-call trace hook, overriding the service's shared
// one.
func Trace(fn TraceFunc) RequestOption {
	return func(o *RequestOptions) {
		o.Trace = fn
	}
}

// Do dispatches one request with the given method and path. The method
// must belong to the fixed supported set; anything else fails
// immediately with an *InvalidMethodError before touching the async
// pipeline. The call order is: request transformer, header merge (base
// below per-call), dispatch, response transformer.
func (s *Service) Do(ctx context.Context, method, path string, opts ...RequestOption) (*TypedResponse, error) {
	if !supportedMethods[method] {
		return nil, &InvalidMethodError{Method: method}
	}

	ro := &RequestOptions{
		Method: method,
		Client: s.client,
		Trace:  s.trace,
	}
	for _, opt := range opts {
		opt(ro)
	}

	perCall := ro.Headers
	base := make([]HeaderSource, 0, len(s.headers)+len(perCall)+1)
	base = append(base, s.headers...)
	if s.headersFunc != nil {
		source, err := s.headersFunc(ctx)
		if err != nil {
			return nil, err
		}
		base = append(base, source)
	}
	ro.Headers = append(base, perCall...)

	if s.requestTransformer != nil {
		if err := s.requestTransformer(ro); err != nil {
			return nil, err
		}
	}

	rawURL := ComposeURL(s.baseURL, path)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := Fetch(ctx, rawURL, ro)
	if err != nil {
		if s.timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &TimeoutError{URL: rawURL, Elapsed: time.Since(start)}
		}
		return nil, err
	}

	if s.responseTransformer != nil {
		return s.responseTransformer(resp)
	}
	return resp, nil
}

// Get dispatches a GET request to path.
func (s *Service) Get(ctx context.Context, path string, opts ...RequestOption) (*TypedResponse, error) {
	return s.Do(ctx, http.MethodGet, path, opts...)
}

// Post dispatches a POST request to path.
func (s *Service) Post(ctx context.Context, path string, opts ...RequestOption) (*TypedResponse, error) {
	return s.Do(ctx, http.MethodPost, path, opts...)
}

// Put dispatches a PUT request to path.
func (s *Service) Put(ctx context.Context, path string, opts ...RequestOption) (*TypedResponse, error) {
	return s.Do(ctx, http.MethodPut, path, opts...)
}

// Patch dispatches a PATCH request to path.
func (s *Service) Patch(ctx context.Context, path string, opts ...RequestOption) (*TypedResponse, error) {
	return s.Do(ctx, http.MethodPatch, path, opts...)
}

// Delete dispatches a DELETE request to path.
func (s *Service) Delete(ctx context.Context, path string, opts ...RequestOption) (*TypedResponse, error) {
	return s.Do(ctx, http.MethodDelete, path, opts...)
}

// Head dispatches a HEAD request to path.
func (s *Service) Head(ctx context.Context, path string, opts ...RequestOption) (*TypedResponse, error) {
	return s.Do(ctx, http.MethodHead, path, opts...)
}

// Options dispatches an OPTIONS request to path.
func (s *Service) Options(ctx context.Context, path string, opts ...RequestOption) (*TypedResponse, error) {
	return s.Do(ctx, http.MethodOptions, path, opts...)
}

// Connect dispatches a CONNECT request to path.
func (s *Service) Connect(ctx context.Context, path string, opts ...RequestOption) (*TypedResponse, error) {
	return s.Do(ctx, http.MethodConnect, path, opts...)
}
