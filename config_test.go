package sdk

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultClientConfig(t *testing.T) {
	config := DefaultClientConfig()

	assert.Equal(t, 30*time.Second, config.SocketTimeout)
	assert.Equal(t, 8192, config.SocketBufferSize)
	assert.Equal(t, "", config.SourceAddress)
	assert.Equal(t, 10, config.MaxConcurrentRequests)
	assert.True(t, config.FollowRedirects)
	assert.Equal(t, 5, config.MaxRedirects)
	assert.True(t, config.ContentCompression)
	assert.Equal(t, "utf-8", config.ContentCharset)
	assert.NotNil(t, config.Headers)
}

func TestClientConfig_FluentChain(t *testing.T) {
	config := DefaultClientConfig().
		WithSocketTimeout(2*time.Second).
		WithSocketBufferSize(2048).
		WithSourceAddress("127.0.0.1").
		WithMaxConcurrentRequests(20).
		WithFollowRedirects(false).
		WithMaxRedirects(2).
		WithContentCompression(false).
		WithContentCharset("iso-8859-1").
		WithHeader("X-Tenant", "acme")

	assert.Equal(t, 2*time.Second, config.SocketTimeout)
	assert.Equal(t, 2048, config.SocketBufferSize)
	assert.Equal(t, "127.0.0.1", config.SourceAddress)
	assert.Equal(t, 20, config.MaxConcurrentRequests)
	assert.False(t, config.FollowRedirects)
	assert.Equal(t, 2, config.MaxRedirects)
	assert.False(t, config.ContentCompression)
	assert.Equal(t, "iso-8859-1", config.ContentCharset)
	assert.Equal(t, "acme", config.Headers["X-Tenant"])
}

func TestClientConfig_ValidateFillsDefaults(t *testing.T) {
	config := &ClientConfig{}
	require.NoError(t, config.Validate())

	assert.Equal(t, 30*time.Second, config.SocketTimeout)
	assert.Equal(t, 8192, config.SocketBufferSize)
	assert.Equal(t, 10, config.MaxConcurrentRequests)
	assert.Equal(t, "utf-8", config.ContentCharset)
	assert.NotNil(t, config.charset)
}

func TestClientConfig_ValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ClientConfig)
	}{
		{name: "negative socket timeout", mutate: func(c *ClientConfig) { c.SocketTimeout = -time.Second }},
		{name: "negative buffer size", mutate: func(c *ClientConfig) { c.SocketBufferSize = -1 }},
		{name: "bad source address", mutate: func(c *ClientConfig) { c.SourceAddress = "not-an-ip" }},
		{name: "negative concurrency", mutate: func(c *ClientConfig) { c.MaxConcurrentRequests = -1 }},
		{name: "negative redirects", mutate: func(c *ClientConfig) { c.MaxRedirects = -1 }},
		{name: "unknown charset", mutate: func(c *ClientConfig) { c.ContentCharset = "no-such-charset" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultClientConfig()
			tt.mutate(config)

			err := config.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
			assert.Equal(t, StatusInvalidConfig, AsServiceException(err).StatusCode)
		})
	}
}

func TestClientConfig_ValidateAcceptsKnownCharsets(t *testing.T) {
	for _, name := range []string{"utf-8", "UTF-8", "iso-8859-1", "windows-1252", "shift_jis"} {
		config := DefaultClientConfig().WithContentCharset(name)
		require.NoError(t, config.Validate(), "charset %q", name)
	}
}
