package sdk

import (
	"time"

	"go.uber.org/zap"
)

// Observer provides hooks for monitoring client operations. Implement it to
// feed your logging or metrics stack; observer methods are called inline on
// the request path and should be fast and non-blocking.
//
// The route passed to the request hooks is the templated path (for example
// "/persons/{id}"), not the concrete URL, so it is safe to use as a metric
// label.
type Observer interface {
	// OnRequestStart is called when a request is accepted for execution,
	// after any cache hit short-circuit.
	OnRequestStart(method, route string)

	// OnRequestEnd is called when a request completes. status is the HTTP
	// status, or zero when the call failed before a response arrived.
	OnRequestEnd(method, route string, status int, duration time.Duration, err error)

	// OnQueueWait is called after the request was admitted by the
	// concurrency limiter, with the time it spent queued.
	OnQueueWait(method, route string, wait time.Duration)

	// OnCacheHit is called when a cacheable request is served from the
	// response cache without network I/O.
	OnCacheHit(key string)

	// OnCacheMiss is called when a cacheable request is not in the cache.
	OnCacheMiss(key string)
}

// NoopObserver is the default observer; it does nothing.
type NoopObserver struct{}

// OnRequestStart does nothing
func (NoopObserver) OnRequestStart(method, route string) {}

// OnRequestEnd does nothing
func (NoopObserver) OnRequestEnd(method, route string, status int, duration time.Duration, err error) {
}

// OnQueueWait does nothing
func (NoopObserver) OnQueueWait(method, route string, wait time.Duration) {}

// OnCacheHit does nothing
func (NoopObserver) OnCacheHit(key string) {}

// OnCacheMiss does nothing
func (NoopObserver) OnCacheMiss(key string) {}

// ZapObserver logs client operations through a zap logger. Request
// completions log at info on success and warn on failure; cache and queue
// events log at debug.
//
// Example:
//
//	logger, _ := zap.NewProduction()
//	sdk := sdk.NewPersonSDK(url).WithObserver(sdk.NewZapObserver(logger))
type ZapObserver struct {
	log *zap.Logger
}

// NewZapObserver builds an observer over the given logger.
func NewZapObserver(log *zap.Logger) *ZapObserver {
	return &ZapObserver{log: log}
}

// OnRequestStart logs the request at debug.
func (o *ZapObserver) OnRequestStart(method, route string) {
	o.log.Debug("request started",
		zap.String("method", method),
		zap.String("route", route))
}

// OnRequestEnd logs the completion with its duration and outcome.
func (o *ZapObserver) OnRequestEnd(method, route string, status int, duration time.Duration, err error) {
	fields := []zap.Field{
		zap.String("method", method),
		zap.String("route", route),
		zap.Int("status", status),
		zap.Duration("duration", duration),
	}
	if err != nil {
		o.log.Warn("request failed", append(fields, zap.Error(err))...)
		return
	}
	o.log.Info("request completed", fields...)
}

// OnQueueWait logs time spent waiting for a limiter slot.
func (o *ZapObserver) OnQueueWait(method, route string, wait time.Duration) {
	o.log.Debug("request admitted",
		zap.String("method", method),
		zap.String("route", route),
		zap.Duration("queue_wait", wait))
}

// OnCacheHit logs the hit at debug.
func (o *ZapObserver) OnCacheHit(key string) {
	o.log.Debug("cache hit", zap.String("key", key))
}

// OnCacheMiss logs the miss at debug.
func (o *ZapObserver) OnCacheMiss(key string) {
	o.log.Debug("cache miss", zap.String("key", key))
}

// CompositeObserver fans events out to several observers in order.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver combines observers, for example a ZapObserver for logs
// plus a PrometheusObserver for metrics.
func NewCompositeObserver(observers ...Observer) *CompositeObserver {
	return &CompositeObserver{observers: observers}
}

// OnRequestStart notifies all observers.
func (c *CompositeObserver) OnRequestStart(method, route string) {
	for _, obs := range c.observers {
		obs.OnRequestStart(method, route)
	}
}

// OnRequestEnd notifies all observers.
func (c *CompositeObserver) OnRequestEnd(method, route string, status int, duration time.Duration, err error) {
	for _, obs := range c.observers {
		obs.OnRequestEnd(method, route, status, duration, err)
	}
}

// OnQueueWait notifies all observers.
func (c *CompositeObserver) OnQueueWait(method, route string, wait time.Duration) {
	for _, obs := range c.observers {
		obs.OnQueueWait(method, route, wait)
	}
}

// OnCacheHit notifies all observers.
func (c *CompositeObserver) OnCacheHit(key string) {
	for _, obs := range c.observers {
		obs.OnCacheHit(key)
	}
}

// OnCacheMiss notifies all observers.
func (c *CompositeObserver) OnCacheMiss(key string) {
	for _, obs := range c.observers {
		obs.OnCacheMiss(key)
	}
}
