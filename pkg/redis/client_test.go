package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		_, err := Options(Config{})
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("tls with default port and url password", func(t *testing.T) {
		opts, err := Options(Config{URL: "rediss://default:pw@eu1.upstash.io"})
		require.NoError(t, err)
		assert.Equal(t, "eu1.upstash.io:6379", opts.Addr)
		assert.Equal(t, "pw", opts.Password)
		assert.NotNil(t, opts.TLSConfig)
	})

	t.Run("explicit password wins", func(t *testing.T) {
		opts, err := Options(Config{URL: "redis://:pw@localhost:6380", Password: "other"})
		require.NoError(t, err)
		assert.Equal(t, "localhost:6380", opts.Addr)
		assert.Equal(t, "other", opts.Password)
		assert.Nil(t, opts.TLSConfig)
	})

	t.Run("no host", func(t *testing.T) {
		_, err := Options(Config{URL: "localhost"})
		assert.Error(t, err)
	})
}
