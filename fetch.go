package makeservice

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPClient is the transport collaborator: anything that can execute
// an *http.Request. *http.Client satisfies it; tests and callers may
// substitute their own.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClientFunc adapts a function to the HTTPClient interface.
type HTTPClientFunc func(req *http.Request) (*http.Response, error)

func (f HTTPClientFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

// TraceInfo is passed to a trace hook: once before dispatch with a nil
// Response, and once after with the wrapped response. Start is the
// moment the request was handed to the transport pipeline.
type TraceInfo struct {
	Method   string
	URL      string
	Headers  http.Header
	Body     any
	Start    time.Time
	Response *TypedResponse
}

// TraceFunc is an opt-in observability hook. It has no effect on
// control flow: a panicking hook is recovered and never aborts the
// request.
type TraceFunc func(info TraceInfo)

// RequestOptions describes one outgoing request. Method defaults to
// GET and Client to http.DefaultClient.
type RequestOptions struct {
	Method  string
	Headers []HeaderSource
	Body    any
	Query   any
	Params  map[string]any
	Trace   TraceFunc
	Client  HTTPClient
}

// Fetch builds and dispatches one request: it merges headers under a
// default "content-type: application/json", substitutes path params,
// appends the query, normalizes the body, invokes the transport, and
// wraps the raw response in a TypedResponse. Transport errors propagate
// unchanged; there is no retry.
func Fetch(ctx context.Context, rawURL string, opts *RequestOptions) (*TypedResponse, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	sources := make([]HeaderSource, 0, len(opts.Headers)+1)
	sources = append(sources, map[string]string{"content-type": "application/json"})
	sources = append(sources, opts.Headers...)
	header := MergeHeaders(sources...)

	finalURL := ReplaceParams(rawURL, opts.Params)
	finalURL, err := AddQuery(finalURL, opts.Query)
	if err != nil {
		return nil, err
	}

	body, err := EnsureBody(opts.Body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, finalURL, bodyReader(body))
	if err != nil {
		return nil, err
	}
	req.Header = header

	info := TraceInfo{
		Method:  method,
		URL:     finalURL,
		Headers: header,
		Body:    body,
		Start:   time.Now(),
	}
	safeTrace(opts.Trace, info)

	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	wrapped := WrapResponse(resp)
	info.Response = wrapped
	safeTrace(opts.Trace, info)

	return wrapped, nil
}

func bodyReader(body any) io.Reader {
	switch b := body.(type) {
	case nil:
		return nil
	case string:
		return strings.NewReader(b)
	case []byte:
		return bytes.NewReader(b)
	case url.Values:
		return strings.NewReader(b.Encode())
	case io.Reader:
		return b
	default:
		return nil
	}
}

func safeTrace(fn TraceFunc, info TraceInfo) {
	if fn == nil {
		return
	}
	defer func() {
		// A failing trace hook must never abort the request.
		_ = recover()
	}()
	fn(info)
}
