// Package sdk is the Go client library for the person service. It provides
// a configurable HTTP client with response caching, pagination and sorting
// helpers, structured error handling and asynchronous request execution.
//
// # Features
//
// The SDK provides:
//   - Fluent, validated configuration for the transport and the cache
//   - LRU response caching with write- or access-based expiration
//   - Compact sort syntax and 1-based pagination descriptors
//   - A single structured error type with stable, dispatchable status codes
//   - Asynchronous execution with a bounded, FIFO concurrency limiter
//   - Pluggable credentials (static tokens, OAuth2 client credentials)
//   - Observability hooks with zap and Prometheus implementations
//
// # Basic Usage
//
// Build a client and fetch a person:
//
//	package main
//
//	import (
//	    "context"
//	    "log"
//	    "time"
//
//	    "github.com/platfora/person-sdk"
//	)
//
//	func main() {
//	    spec, err := sdk.NewCacheSpec().
//	        Expiration(5*time.Minute, sdk.ExpireAfterWrite).
//	        MaxElements(1000).
//	        Build()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    client, err := sdk.NewPersonSDK("https://api.example.com").
//	        WithClientConfig(sdk.DefaultClientConfig().WithSocketTimeout(2 * time.Second)).
//	        WithCacheSpec(spec).
//	        Create()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    person, exc := client.Get(context.Background(), "100ae20131cdbe1").Resolve()
//	    if exc != nil {
//	        log.Fatal(exc)
//	    }
//	    log.Printf("found %s", person.Username)
//	}
//
// # Concurrency
//
// Every operation returns immediately with an AsyncResult. Requests run in
// the background, bounded by ClientConfig.MaxConcurrentRequests; excess
// requests queue and are admitted in arrival order. Join results whenever
// convenient:
//
//	getF := client.Get(ctx, id)
//	searchF := client.Search(ctx, nil, sdk.SortNone, sdk.DefaultPage)
//
//	person, exc := getF.Resolve()
//	results, exc2 := searchF.Resolve()
//
// # Error Handling
//
// Every failure is a *ServiceException carrying a human-readable message and
// a stable status code. Dispatch on the code, never the message:
//
//	_, exc := client.Activate(ctx, id).Resolve()
//	exc.Dispatch(func(e *sdk.ServiceException) {
//	    log.Printf("unexpected failure: %v", e)
//	}, map[sdk.StatusCode]sdk.StatusHandler{
//	    "person.illegal.state.change": func(e *sdk.ServiceException) {
//	        // already active
//	    },
//	})
//
// Sentinel errors are also supported through errors.Is, for example
// errors.Is(exc, sdk.ErrTimeout) for socket timeouts.
package sdk
