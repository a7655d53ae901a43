package sdk

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSpecBuilder_Defaults(t *testing.T) {
	spec, err := NewCacheSpec().Build()
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), spec.Expiration())
	assert.Equal(t, ExpireAfterWrite, spec.Mode())
	assert.Equal(t, 1024, spec.MaxElements())
}

func TestCacheSpecBuilder_FullySpecified(t *testing.T) {
	spec, err := NewCacheSpec().
		Expiration(5*time.Minute, ExpireAfterAccess).
		MaxElements(100).
		Build()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, spec.Expiration())
	assert.Equal(t, ExpireAfterAccess, spec.Mode())
	assert.Equal(t, 100, spec.MaxElements())
}

func TestCacheSpecBuilder_NegativeExpiration(t *testing.T) {
	_, err := NewCacheSpec().
		Expiration(-time.Second, ExpireAfterWrite).
		Build()
	require.Error(t, err)

	exc := AsServiceException(err)
	assert.Equal(t, StatusInvalidCacheSpec, exc.StatusCode)
	assert.True(t, errors.Is(err, ErrInvalidCacheSpec))
}

func TestCacheSpecBuilder_MaxElements(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{name: "zero", n: 0, wantErr: true},
		{name: "negative", n: -5, wantErr: true},
		{name: "one", n: 1, wantErr: false},
		{name: "large", n: 100000, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := NewCacheSpec().MaxElements(tt.n).Build()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, StatusInvalidCacheSpec, AsServiceException(err).StatusCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.n, spec.MaxElements())
		})
	}
}

func TestExpirationMode_String(t *testing.T) {
	assert.Equal(t, "after-write", ExpireAfterWrite.String())
	assert.Equal(t, "after-access", ExpireAfterAccess.String())
}
