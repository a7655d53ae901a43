package sdk

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusObserver exports client operations as Prometheus metrics under
// the "person_sdk" namespace.
type PrometheusObserver struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	queueWait       *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	inFlight        prometheus.Gauge
}

// NewPrometheusObserver builds an observer and registers its collectors with
// reg. Pass prometheus.DefaultRegisterer to use the process-wide registry.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	o := &PrometheusObserver{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "person_sdk",
			Name:      "requests_total",
			Help:      "Completed requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "person_sdk",
			Name:      "request_duration_seconds",
			Help:      "Request latency from dispatch to completion.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		queueWait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "person_sdk",
			Name:      "queue_wait_seconds",
			Help:      "Time requests spent waiting for a concurrency slot.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"method", "route"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "person_sdk",
			Name:      "cache_hits_total",
			Help:      "Requests served from the response cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "person_sdk",
			Name:      "cache_misses_total",
			Help:      "Cacheable requests not found in the response cache.",
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "person_sdk",
			Name:      "requests_in_flight",
			Help:      "Requests currently executing.",
		}),
	}
	reg.MustRegister(
		o.requestsTotal,
		o.requestDuration,
		o.queueWait,
		o.cacheHits,
		o.cacheMisses,
		o.inFlight,
	)
	return o
}

// OnRequestStart increments the in-flight gauge.
func (o *PrometheusObserver) OnRequestStart(method, route string) {
	o.inFlight.Inc()
}

// OnRequestEnd records the completion. Requests that failed before any
// response use status label "0".
func (o *PrometheusObserver) OnRequestEnd(method, route string, status int, duration time.Duration, err error) {
	o.inFlight.Dec()
	o.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	o.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// OnQueueWait records time spent queued for a limiter slot.
func (o *PrometheusObserver) OnQueueWait(method, route string, wait time.Duration) {
	o.queueWait.WithLabelValues(method, route).Observe(wait.Seconds())
}

// OnCacheHit increments the hit counter.
func (o *PrometheusObserver) OnCacheHit(key string) {
	o.cacheHits.Inc()
}

// OnCacheMiss increments the miss counter.
func (o *PrometheusObserver) OnCacheMiss(key string) {
	o.cacheMisses.Inc()
}
