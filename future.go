package sdk

import (
	"context"
	"sync"
)

// AsyncResult is a handle to the eventual single outcome of an in-flight
// operation: either a typed value or a *ServiceException. It is the checked
// future the client methods return, letting callers issue several requests
// without blocking and join them later.
//
// An AsyncResult is resolved exactly once and may be observed from any number
// of goroutines. Resolving one result never affects others.
//
// Example:
//
//	getF := client.Get(ctx, "100ae20131cdbe1")
//	searchF := client.Search(ctx, nil, sdk.SortNone, sdk.DefaultPage)
//
//	person, exc := getF.Resolve()
//	results, exc2 := searchF.Resolve()
type AsyncResult[T any] struct {
	done chan struct{}
	once sync.Once

	// value and exc are written exactly once, before done is closed.
	value T
	exc   *ServiceException
}

// newAsyncResult creates an unresolved result.
func newAsyncResult[T any]() *AsyncResult[T] {
	return &AsyncResult[T]{done: make(chan struct{})}
}

// resolvedResult creates a result that is already resolved to a value.
// Used for cache hits, which never enter the request pipeline.
func resolvedResult[T any](value T) *AsyncResult[T] {
	r := newAsyncResult[T]()
	r.complete(value, nil)
	return r
}

// failedResult creates a result that is already resolved to a failure.
// Used for caller validation errors, which fail before any I/O.
func failedResult[T any](exc *ServiceException) *AsyncResult[T] {
	r := newAsyncResult[T]()
	var zero T
	r.complete(zero, exc)
	return r
}

// complete resolves the result. Later calls are no-ops; the first outcome wins.
func (r *AsyncResult[T]) complete(value T, exc *ServiceException) {
	r.once.Do(func() {
		r.value = value
		r.exc = exc
		close(r.done)
	})
}

// Resolve blocks until the operation completes and returns its outcome.
// Exactly one of the value and the exception is meaningful: the exception is
// nil on success. Resolve may be called any number of times, from any number
// of goroutines, and always returns the same outcome.
func (r *AsyncResult[T]) Resolve() (T, *ServiceException) {
	<-r.done
	return r.value, r.exc
}

// ResolveContext blocks until the operation completes or ctx is done.
// If ctx expires first, the result stays unresolved from the caller's point
// of view and a timeout exception is returned; the underlying request keeps
// running to completion.
func (r *AsyncResult[T]) ResolveContext(ctx context.Context) (T, *ServiceException) {
	select {
	case <-r.done:
		return r.value, r.exc
	case <-ctx.Done():
		var zero T
		return zero, newTimeoutError("resolve", ctx.Err())
	}
}

// Poll returns the outcome without blocking. The boolean reports whether the
// operation has completed; the value and exception are only meaningful when
// it is true.
func (r *AsyncResult[T]) Poll() (T, *ServiceException, bool) {
	select {
	case <-r.done:
		return r.value, r.exc, true
	default:
		var zero T
		return zero, nil, false
	}
}

// transformResult derives a typed result from a raw transport result,
// applying decode to successful responses. Cache hits and validation
// failures are already resolved, so the transform is applied inline and the
// derived result is immediately observable; everything else is bridged by a
// goroutine that waits on the source.
func transformResult[T any](src *AsyncResult[rawResponse], decode func(rawResponse) (T, *ServiceException)) *AsyncResult[T] {
	if raw, exc, ok := src.Poll(); ok {
		if exc != nil {
			return failedResult[T](exc)
		}
		value, derr := decode(raw)
		if derr != nil {
			return failedResult[T](derr)
		}
		return resolvedResult(value)
	}

	out := newAsyncResult[T]()
	go func() {
		raw, exc := src.Resolve()
		if exc != nil {
			var zero T
			out.complete(zero, exc)
			return
		}
		value, derr := decode(raw)
		if derr != nil {
			var zero T
			out.complete(zero, derr)
			return
		}
		out.complete(value, nil)
	}()
	return out
}
