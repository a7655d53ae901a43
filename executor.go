package sdk

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// errRedirectLimit marks a request aborted by the redirect cap. It travels
// out of http.Client.Do wrapped in a *url.Error and is unwrapped with
// errors.Is.
var errRedirectLimit = errors.New("too many redirects")

// request is one operation handed to the executor. route is the templated
// path used for observability labels; path is the concrete path on the wire.
type request struct {
	method string
	route  string
	path   string
	query  url.Values
	body   []byte

	// cacheable requests consult the response cache before executing and
	// populate it on success. Only safe, idempotent reads set this.
	cacheable bool
}

// rawResponse is the transport-level outcome of a successful request.
type rawResponse struct {
	status    int
	headers   http.Header
	body      []byte
	fromCache bool
}

// requestExecutor owns the HTTP plumbing shared by every client operation:
// the connection pool, the concurrency limiter, the response cache and the
// credential provider. One executor belongs to exactly one client.
type requestExecutor struct {
	config      *ClientConfig
	baseURL     *url.URL
	client      *http.Client
	limiter     *semaphore.Weighted
	cache       *responseCache
	credentials CredentialProvider
	observer    Observer
}

// newRequestExecutor wires an executor from validated configuration. cache
// may be nil, in which case nothing is cached.
func newRequestExecutor(baseURL *url.URL, config *ClientConfig, cache *responseCache, credentials CredentialProvider, observer Observer) *requestExecutor {
	dialer := &net.Dialer{Timeout: config.SocketTimeout}
	if config.SourceAddress != "" {
		dialer.LocalAddr = &net.TCPAddr{IP: net.ParseIP(config.SourceAddress)}
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			return &deadlineConn{Conn: conn, timeout: config.SocketTimeout}, nil
		},
		MaxIdleConnsPerHost: config.MaxConcurrentRequests,
		ReadBufferSize:      config.SocketBufferSize,
		WriteBufferSize:     config.SocketBufferSize,
		DisableCompression:  !config.ContentCompression,
	}

	checkRedirect := func(req *http.Request, via []*http.Request) error {
		if !config.FollowRedirects {
			return http.ErrUseLastResponse
		}
		if len(via) >= config.MaxRedirects {
			return errRedirectLimit
		}
		return nil
	}

	return &requestExecutor{
		config:      config,
		baseURL:     baseURL,
		client:      &http.Client{Transport: transport, CheckRedirect: checkRedirect},
		limiter:     semaphore.NewWeighted(int64(config.MaxConcurrentRequests)),
		cache:       cache,
		credentials: credentials,
		observer:    observer,
	}
}

// execute runs req asynchronously and returns a handle to its outcome.
//
// Cacheable requests consult the cache first; a hit resolves immediately on
// the calling goroutine without touching the limiter or the network. Misses
// and non-cacheable requests queue for a limiter slot, admitted strictly in
// the order they arrived, and run on their own goroutine.
func (e *requestExecutor) execute(ctx context.Context, req request) *AsyncResult[rawResponse] {
	var key string
	if req.cacheable && e.cache != nil {
		key = fingerprint(req.method, req.path, req.query)
		if body, ok := e.cache.get(key); ok {
			e.observer.OnCacheHit(key)
			return resolvedResult(rawResponse{
				status:    http.StatusOK,
				body:      body,
				fromCache: true,
			})
		}
		e.observer.OnCacheMiss(key)
	}

	result := newAsyncResult[rawResponse]()

	queued := time.Now()
	// semaphore.Weighted wakes blocked waiters in FIFO order, so queued
	// requests are admitted in the order they arrived.
	go func() {
		if err := e.limiter.Acquire(ctx, 1); err != nil {
			result.complete(rawResponse{}, admissionError(err))
			return
		}
		defer e.limiter.Release(1)
		e.observer.OnQueueWait(req.method, req.route, time.Since(queued))

		e.observer.OnRequestStart(req.method, req.route)
		started := time.Now()
		resp, exc := e.doRequest(ctx, req)
		if exc != nil {
			e.observer.OnRequestEnd(req.method, req.route, exc.HTTPStatus, time.Since(started), exc)
			result.complete(rawResponse{}, exc)
			return
		}
		e.observer.OnRequestEnd(req.method, req.route, resp.status, time.Since(started), nil)

		if key != "" {
			e.cache.put(key, resp.body)
		}
		result.complete(resp, nil)
	}()

	return result
}

// doRequest performs one HTTP exchange and normalizes every failure mode
// into a ServiceException.
func (e *requestExecutor) doRequest(ctx context.Context, req request) (rawResponse, *ServiceException) {
	creds, err := e.credentials.Credentials(ctx)
	if err != nil {
		return rawResponse{}, newAuthError(err)
	}

	u := e.baseURL.JoinPath(req.path)
	u.RawQuery = req.query.Encode()

	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return rawResponse{}, newTransportError("request construction", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range e.config.Headers {
		httpReq.Header.Set(k, v)
	}
	if auth := creds.authorization(); auth != "" {
		httpReq.Header.Set("Authorization", auth)
	}
	id := CorrelationID(ctx)
	if id == "" {
		id = uuid.NewString()
	}
	httpReq.Header.Set("X-Correlation-Id", id)

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return rawResponse{}, e.classify(req.method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return rawResponse{}, e.classify(req.method, err)
	}

	raw, exc := decodeText(raw, e.config.charset)
	if exc != nil {
		return rawResponse{}, exc
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return rawResponse{}, parseServiceError(resp.StatusCode, raw)
	}

	return rawResponse{
		status:  resp.StatusCode,
		headers: resp.Header,
		body:    raw,
	}, nil
}

// classify maps a transport-layer error onto the SDK's failure taxonomy.
func (e *requestExecutor) classify(op string, err error) *ServiceException {
	if errors.Is(err, errRedirectLimit) {
		return newRedirectLimitError(e.config.MaxRedirects)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newTimeoutError(op, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newTimeoutError(op, err)
	}
	return newTransportError(op, err)
}

// admissionError maps a limiter acquisition failure.
func admissionError(err error) *ServiceException {
	if errors.Is(err, context.DeadlineExceeded) {
		return newTimeoutError("queue wait", err)
	}
	return newTransportError("queue wait", err)
}

// deadlineConn enforces the socket inactivity timeout: each Read arms a
// fresh deadline, so the clock measures the gap between consecutive packets
// rather than total response time.
type deadlineConn struct {
	net.Conn
	timeout time.Duration
}

func (c *deadlineConn) Read(p []byte) (int, error) {
	if c.timeout > 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Read(p)
}
