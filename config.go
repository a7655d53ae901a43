package sdk

import (
	"fmt"
	"net"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// ClientConfig holds the transport-level configuration for a client. It is
// built once, validated at client construction, and never reconfigured at
// runtime.
//
// Configuration uses the fluent builder pattern:
//
//	config := sdk.DefaultClientConfig().
//	    WithSocketTimeout(2 * time.Second).
//	    WithSocketBufferSize(2048).
//	    WithSourceAddress("0.0.0.0").
//	    WithMaxConcurrentRequests(20).
//	    WithMaxRedirects(5).
//	    WithContentCompression(false).
//	    WithContentCharset("utf-8")
type ClientConfig struct {
	// SocketTimeout is the maximum period of inactivity between two
	// consecutive data packets. When it elapses without data the call fails
	// with StatusTimeout.
	// Default: 30s
	SocketTimeout time.Duration

	// SocketBufferSize is the read/write buffer size in bytes for
	// connections opened by the client.
	// Default: 8192
	SocketBufferSize int

	// SourceAddress is the local IP address outbound connections bind to.
	// Empty means the operating system chooses.
	SourceAddress string

	// MaxConcurrentRequests bounds the number of simultaneous in-flight
	// requests. Excess calls queue and are admitted in FIFO order.
	// Default: 10
	MaxConcurrentRequests int

	// FollowRedirects enables transparent following of HTTP redirects.
	// Default: true
	FollowRedirects bool

	// MaxRedirects is the number of consecutive redirects followed before
	// the call fails with StatusRedirectLimit. Only consulted when
	// FollowRedirects is true.
	// Default: 5
	MaxRedirects int

	// ContentCompression requests and transparently decodes compressed
	// (gzip) response bodies.
	// Default: true
	ContentCompression bool

	// ContentCharset names the character set response text is decoded with.
	// Any name registered with the IANA index is accepted.
	// Default: "utf-8"
	ContentCharset string

	// Headers are custom headers included in every request, for example
	// tenant identifiers or static API keys.
	Headers map[string]string

	// charset is resolved from ContentCharset during Validate.
	charset encoding.Encoding
}

// DefaultClientConfig returns a ClientConfig with defaults suitable for most
// callers: 30s socket timeout, 8K buffers, 10 concurrent requests, up to 5
// redirects followed, compression on, UTF-8 text.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		SocketTimeout:         30 * time.Second,
		SocketBufferSize:      8192,
		MaxConcurrentRequests: 10,
		FollowRedirects:       true,
		MaxRedirects:          5,
		ContentCompression:    true,
		ContentCharset:        "utf-8",
		Headers:               make(map[string]string),
	}
}

// WithSocketTimeout sets the inactivity timeout between data packets.
func (c *ClientConfig) WithSocketTimeout(d time.Duration) *ClientConfig {
	c.SocketTimeout = d
	return c
}

// WithSocketBufferSize sets the connection buffer size in bytes.
func (c *ClientConfig) WithSocketBufferSize(n int) *ClientConfig {
	c.SocketBufferSize = n
	return c
}

// WithSourceAddress binds outbound connections to a local IP address.
func (c *ClientConfig) WithSourceAddress(addr string) *ClientConfig {
	c.SourceAddress = addr
	return c
}

// WithMaxConcurrentRequests bounds simultaneous in-flight requests.
func (c *ClientConfig) WithMaxConcurrentRequests(n int) *ClientConfig {
	c.MaxConcurrentRequests = n
	return c
}

// WithFollowRedirects enables or disables transparent redirect following.
func (c *ClientConfig) WithFollowRedirects(follow bool) *ClientConfig {
	c.FollowRedirects = follow
	return c
}

// WithMaxRedirects caps the number of redirects followed per call.
func (c *ClientConfig) WithMaxRedirects(n int) *ClientConfig {
	c.MaxRedirects = n
	return c
}

// WithContentCompression turns transparent gzip on or off.
func (c *ClientConfig) WithContentCompression(enabled bool) *ClientConfig {
	c.ContentCompression = enabled
	return c
}

// WithContentCharset sets the character set for response text.
func (c *ClientConfig) WithContentCharset(name string) *ClientConfig {
	c.ContentCharset = name
	return c
}

// WithHeader adds a custom header sent with every request.
func (c *ClientConfig) WithHeader(key, value string) *ClientConfig {
	if c.Headers == nil {
		c.Headers = make(map[string]string)
	}
	c.Headers[key] = value
	return c
}

// Validate checks the configuration, fills in defaults for unset values and
// resolves the charset. It is called by PersonSDK.Create; callers normally do
// not need to invoke it themselves.
func (c *ClientConfig) Validate() error {
	if c.SocketTimeout < 0 {
		return c.invalid(fmt.Sprintf("socket timeout must not be negative, got %s", c.SocketTimeout))
	}
	if c.SocketTimeout == 0 {
		c.SocketTimeout = 30 * time.Second
	}
	if c.SocketBufferSize < 0 {
		return c.invalid(fmt.Sprintf("socket buffer size must not be negative, got %d", c.SocketBufferSize))
	}
	if c.SocketBufferSize == 0 {
		c.SocketBufferSize = 8192
	}
	if c.SourceAddress != "" && net.ParseIP(c.SourceAddress) == nil {
		return c.invalid(fmt.Sprintf("source address %q is not a valid IP address", c.SourceAddress))
	}
	if c.MaxConcurrentRequests < 0 {
		return c.invalid(fmt.Sprintf("max concurrent requests must not be negative, got %d", c.MaxConcurrentRequests))
	}
	if c.MaxConcurrentRequests == 0 {
		c.MaxConcurrentRequests = 10
	}
	if c.MaxRedirects < 0 {
		return c.invalid(fmt.Sprintf("max redirects must not be negative, got %d", c.MaxRedirects))
	}
	if c.ContentCharset == "" {
		c.ContentCharset = "utf-8"
	}

	enc, err := htmlindex.Get(c.ContentCharset)
	if err != nil {
		return c.invalid(fmt.Sprintf("unknown content charset %q", c.ContentCharset))
	}
	c.charset = enc

	return nil
}

func (c *ClientConfig) invalid(message string) error {
	return &ServiceException{
		Message:    message,
		StatusCode: StatusInvalidConfig,
		wrapped:    ErrInvalidConfig,
	}
}
