package sdk

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// recordingObserver records the order of events it sees.
type recordingObserver struct {
	events []string
}

func (r *recordingObserver) OnRequestStart(method, route string) {
	r.events = append(r.events, "start "+method+" "+route)
}

func (r *recordingObserver) OnRequestEnd(method, route string, status int, duration time.Duration, err error) {
	r.events = append(r.events, fmt.Sprintf("end %s %s %d", method, route, status))
}

func (r *recordingObserver) OnQueueWait(method, route string, wait time.Duration) {
	r.events = append(r.events, "wait "+method+" "+route)
}

func (r *recordingObserver) OnCacheHit(key string)  { r.events = append(r.events, "hit "+key) }
func (r *recordingObserver) OnCacheMiss(key string) { r.events = append(r.events, "miss "+key) }

func TestZapObserver(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	obs := NewZapObserver(zap.New(core))

	obs.OnRequestStart("GET", "/persons/{id}")
	obs.OnQueueWait("GET", "/persons/{id}", 3*time.Millisecond)
	obs.OnRequestEnd("GET", "/persons/{id}", 200, 15*time.Millisecond, nil)
	obs.OnCacheHit("GET /persons/p1")
	obs.OnCacheMiss("GET /persons/p2")
	obs.OnRequestEnd("POST", "/persons", 409, time.Millisecond,
		NewServiceException("person.illegal.state.change", "nope"))

	entries := logs.All()
	require.Len(t, entries, 6)

	completed := logs.FilterMessage("request completed").All()
	require.Len(t, completed, 1)
	assert.Equal(t, zapcore.InfoLevel, completed[0].Level)
	assert.Equal(t, "/persons/{id}", completed[0].ContextMap()["route"])
	assert.Equal(t, int64(200), completed[0].ContextMap()["status"])

	failed := logs.FilterMessage("request failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.WarnLevel, failed[0].Level)
}

func TestPrometheusObserver(t *testing.T) {
	registry := prometheus.NewRegistry()
	obs := NewPrometheusObserver(registry)

	obs.OnRequestStart("GET", "/persons/{id}")
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.inFlight))

	obs.OnRequestEnd("GET", "/persons/{id}", 200, 12*time.Millisecond, nil)
	assert.Equal(t, 0.0, testutil.ToFloat64(obs.inFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.requestsTotal.WithLabelValues("GET", "/persons/{id}", "200")))

	obs.OnCacheHit("k")
	obs.OnCacheHit("k")
	obs.OnCacheMiss("k")
	assert.Equal(t, 2.0, testutil.ToFloat64(obs.cacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.cacheMisses))
}

func TestPrometheusObserver_FailedRequestStatusLabel(t *testing.T) {
	registry := prometheus.NewRegistry()
	obs := NewPrometheusObserver(registry)

	obs.OnRequestStart("GET", "/persons/{id}")
	obs.OnRequestEnd("GET", "/persons/{id}", 0, time.Millisecond,
		newTransportError("GET", fmt.Errorf("refused")))

	assert.Equal(t, 1.0, testutil.ToFloat64(obs.requestsTotal.WithLabelValues("GET", "/persons/{id}", "0")))
}

func TestCompositeObserver(t *testing.T) {
	first := &recordingObserver{}
	second := &recordingObserver{}
	composite := NewCompositeObserver(first, second)

	composite.OnRequestStart("GET", "/persons")
	composite.OnQueueWait("GET", "/persons", time.Millisecond)
	composite.OnRequestEnd("GET", "/persons", 200, time.Millisecond, nil)
	composite.OnCacheHit("k1")
	composite.OnCacheMiss("k2")

	want := []string{
		"start GET /persons",
		"wait GET /persons",
		"end GET /persons 200",
		"hit k1",
		"miss k2",
	}
	assert.Equal(t, want, first.events)
	assert.Equal(t, want, second.events)
}

func TestObserver_EndToEnd(t *testing.T) {
	server := personServer(t)
	defer server.Close()

	spec, err := NewCacheSpec().Expiration(time.Minute, ExpireAfterWrite).Build()
	require.NoError(t, err)

	rec := &recordingObserver{}
	client := newTestClient(t, server, func(b *PersonSDK) {
		b.WithCacheSpec(spec)
		b.WithObserver(rec)
	})

	ctx := context.Background()
	_, exc := client.Get(ctx, "p1").Resolve()
	require.Nil(t, exc)
	_, exc = client.Get(ctx, "p1").Resolve()
	require.Nil(t, exc)

	want := []string{
		"miss GET /persons/p1",
		"wait GET /persons/{id}",
		"start GET /persons/{id}",
		"end GET /persons/{id} 200",
		"hit GET /persons/p1",
	}
	assert.Equal(t, want, rec.events)
}

func TestNoopObserver(t *testing.T) {
	var obs Observer = NoopObserver{}
	obs.OnRequestStart("GET", "/persons")
	obs.OnRequestEnd("GET", "/persons", 200, 0, nil)
	obs.OnQueueWait("GET", "/persons", 0)
	obs.OnCacheHit("k")
	obs.OnCacheMiss("k")
}
