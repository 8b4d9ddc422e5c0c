// Package makeservice is a client-side HTTP request-building layer: it
// composes URLs, headers, bodies and path parameters into request
// descriptors, dispatches them through a pluggable transport, and
// returns a response wrapper that can lazily decode and validate its
// payload against a user-supplied schema.
//
// This package is designed for programmatic use and provides:
//   - A Service builder with one callable per HTTP verb
//   - Deterministic header merging with deletion semantics
//   - URL template substitution and query composition
//   - Schema-pluggable response decoding with a consistent error contract
//   - Deep key-case transformers for adapting payload conventions
//
// Basic Usage:
//
//	svc := makeservice.New("https://api.example.com/api",
//	    makeservice.WithHeaders(map[string]string{"Authorization": "Bearer 123"}),
//	    makeservice.WithTimeout(30*time.Second),
//	)
//
//	resp, err := svc.Get(ctx, "/users/:id",
//	    makeservice.Params(map[string]any{"id": "1"}),
//	    makeservice.Query(map[string]string{"admin": "true"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	user, err := makeservice.DecodeJSON[User](resp)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Schema Validation:
//
//	schema := jsonschema.MustCompile(`{"type":"object","required":["id"]}`)
//	value, err := resp.JSON(schema)
//	var decodeErr *makeservice.DecodeError
//	if errors.As(err, &decodeErr) {
//	    // decodeErr.Issues carries every validation failure.
//	}
//
// Thread Safety:
//
// A Service is immutable after construction and safe for concurrent
// use; every call builds its own request state. A TypedResponse is
// created per call and is not safe for concurrent decodes.
package makeservice
