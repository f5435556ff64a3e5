package lockout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTracker(cfg Config) (*Tracker, *clock) {
	c := &clock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	store := NewMemoryStore()
	store.now = c.now
	return NewTracker(cfg, store), c
}

func TestBlocksAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	tr, clk := newTracker(Config{MaxAttempts: 3, AttemptWindow: time.Minute, BlockDuration: 10 * time.Minute})

	for i := 0; i < 2; i++ {
		blocked, err := tr.RecordFailure(ctx, "A@Example.com", "")
		require.NoError(t, err)
		assert.False(t, blocked)
	}
	blocked, err := tr.RecordFailure(ctx, "a@example.com ", "")
	require.NoError(t, err)
	assert.True(t, blocked)

	left, err := tr.Blocked(ctx, "a@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, left)

	clk.t = clk.t.Add(10 * time.Minute)
	left, err = tr.Blocked(ctx, "a@example.com", "")
	require.NoError(t, err)
	assert.Zero(t, left)
}

func TestAttemptWindowExpires(t *testing.T) {
	ctx := context.Background()
	tr, clk := newTracker(Config{MaxAttempts: 2, AttemptWindow: time.Minute, BlockDuration: time.Minute})

	_, _ = tr.RecordFailure(ctx, "a@example.com", "")
	clk.t = clk.t.Add(2 * time.Minute)
	blocked, err := tr.RecordFailure(ctx, "a@example.com", "")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestClearResetsCount(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTracker(Config{MaxAttempts: 2, AttemptWindow: time.Minute, BlockDuration: time.Minute, TrackIP: true})

	_, _ = tr.RecordFailure(ctx, "a@example.com", "10.0.0.1")
	require.NoError(t, tr.Clear(ctx, "a@example.com", "10.0.0.1"))

	blocked, err := tr.RecordFailure(ctx, "a@example.com", "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestIPBlockedAcrossEmails(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTracker(Config{MaxAttempts: 2, AttemptWindow: time.Minute, BlockDuration: time.Minute, TrackIP: true})

	var blocked bool
	for _, email := range []string{"a@x.co", "b@x.co", "c@x.co", "d@x.co"} {
		var err error
		blocked, err = tr.RecordFailure(ctx, email, "10.0.0.9")
		require.NoError(t, err)
	}
	assert.True(t, blocked)

	left, err := tr.Blocked(ctx, "fresh@x.co", "10.0.0.9")
	require.NoError(t, err)
	assert.Positive(t, left)

	left, err = tr.Blocked(ctx, "fresh@x.co", "10.0.0.10")
	require.NoError(t, err)
	assert.Zero(t, left)
}
