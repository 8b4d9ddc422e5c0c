package makeservice

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceEndToEnd(t *testing.T) {
	var gotPath, gotQuery, gotAuth, gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":1,"name":"Ada"}`))
	}))
	defer server.Close()

	svc := New(server.URL+"/api",
		WithHeaders(map[string]string{"Authorization": "Bearer 123"}),
	)

	resp, err := svc.Get(context.Background(), "/users/:id",
		Params(map[string]any{"id": "1"}),
		Query(map[string]string{"admin": "true"}),
	)
	require.NoError(t, err)

	assert.Equal(t, "/api/users/1", gotPath)
	assert.Equal(t, "admin=true", gotQuery)
	assert.Equal(t, "Bearer 123", gotAuth)
	assert.Equal(t, "application/json", gotContentType)

	type user struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	decoded, err := DecodeJSON[user](resp)
	require.NoError(t, err)
	assert.Equal(t, user{ID: 1, Name: "Ada"}, decoded)
}

func TestServicePerCallHeadersWin(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer server.Close()

	svc := New(server.URL, WithHeaders(map[string]string{"Authorization": "Bearer base"}))

	_, err := svc.Get(context.Background(), "/",
		Headers(map[string]string{"Authorization": "Bearer call"}))
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if gotAuth != "Bearer call" {
		t.Errorf("Expected per-call header to win, got %q", gotAuth)
	}
}

func TestServiceDynamicHeaders(t *testing.T) {
	var gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Token")
	}))
	defer server.Close()

	calls := 0
	svc := New(server.URL, WithHeadersFunc(func(ctx context.Context) (HeaderSource, error) {
		calls++
		return map[string]string{"X-Token": "fresh"}, nil
	}))

	if _, err := svc.Get(context.Background(), "/"); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if gotToken != "fresh" {
		t.Errorf("Expected dynamic header, got %q", gotToken)
	}
	if calls != 1 {
		t.Errorf("Expected header source resolved once per call, got %d", calls)
	}
}

func TestServiceDynamicHeadersError(t *testing.T) {
	headerErr := errors.New("token refresh failed")
	svc := New("http://example.test", WithHeadersFunc(func(ctx context.Context) (HeaderSource, error) {
		return nil, headerErr
	}))

	_, err := svc.Get(context.Background(), "/")
	if !errors.Is(err, headerErr) {
		t.Errorf("Expected header source error to propagate, got %v", err)
	}
}

func TestServiceInvalidMethod(t *testing.T) {
	svc := New("http://example.test")

	_, err := svc.Do(context.Background(), "TRACE", "/")
	var methodErr *InvalidMethodError
	if !errors.As(err, &methodErr) {
		t.Fatalf("Expected *InvalidMethodError, got %v", err)
	}
	if methodErr.Method != "TRACE" {
		t.Errorf("Expected method TRACE in error, got %q", methodErr.Method)
	}
}

func TestServiceTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	svc := New(server.URL, WithTimeout(50*time.Millisecond))

	start := time.Now()
	_, err := svc.Get(context.Background(), "/slow")
	elapsed := time.Since(start)

	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("Expected *TimeoutError, got %v", err)
	}
	if timeoutErr.URL != server.URL+"/slow" {
		t.Errorf("Expected timeout error to name the URL, got %q", timeoutErr.URL)
	}
	if timeoutErr.Elapsed <= 0 {
		t.Error("Expected timeout error to carry elapsed time")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("Expected timeout to match context.DeadlineExceeded")
	}
	if elapsed > time.Second {
		t.Errorf("Expected the call to return promptly, took %v", elapsed)
	}
}

func TestServiceTransformerOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"source":"wire"}`))
	}))
	defer server.Close()

	var order []string
	svc := New(server.URL,
		WithRequestTransformer(func(o *RequestOptions) error {
			order = append(order, "request")
			return nil
		}),
		WithResponseTransformer(func(r *TypedResponse) (*TypedResponse, error) {
			order = append(order, "response")
			return r, nil
		}),
	)

	if _, err := svc.Get(context.Background(), "/"); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(order) != 2 || order[0] != "request" || order[1] != "response" {
		t.Errorf("Expected transformers in request,response order, got %v", order)
	}
}

func TestServiceVerbs(t *testing.T) {
	var gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
	}))
	defer server.Close()

	svc := New(server.URL)
	ctx := context.Background()

	calls := []struct {
		verb string
		call func() (*TypedResponse, error)
	}{
		{http.MethodGet, func() (*TypedResponse, error) { return svc.Get(ctx, "/") }},
		{http.MethodPost, func() (*TypedResponse, error) { return svc.Post(ctx, "/") }},
		{http.MethodPut, func() (*TypedResponse, error) { return svc.Put(ctx, "/") }},
		{http.MethodPatch, func() (*TypedResponse, error) { return svc.Patch(ctx, "/") }},
		{http.MethodDelete, func() (*TypedResponse, error) { return svc.Delete(ctx, "/") }},
		{http.MethodHead, func() (*TypedResponse, error) { return svc.Head(ctx, "/") }},
		{http.MethodOptions, func() (*TypedResponse, error) { return svc.Options(ctx, "/") }},
	}

	for _, tc := range calls {
		t.Run(tc.verb, func(t *testing.T) {
			if _, err := tc.call(); err != nil {
				t.Fatalf("%s returned error: %v", tc.verb, err)
			}
			if gotMethod != tc.verb {
				t.Errorf("Expected method %s, got %s", tc.verb, gotMethod)
			}
		})
	}
}

func TestServiceConcurrentCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	svc := New(server.URL, WithHeaders(map[string]string{"X-Shared": "yes"}))

	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() {
			_, err := svc.Get(context.Background(), "/users")
			done <- err
		}()
	}
	for i := 0; i < 10; i++ {
		if err := <-done; err != nil {
			t.Errorf("Concurrent call returned error: %v", err)
		}
	}
}
