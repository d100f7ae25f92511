package httpx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLimiterSetRetryAfter(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	set := newLimiterSet(RateLimitConfig{RequestsPerWindow: 6, Window: time.Minute, Burst: 1})
	set.now = func() time.Time { return now }

	ok, _ := set.allow("10.0.0.1")
	require.True(t, ok)

	ok, wait := set.allow("10.0.0.1")
	require.False(t, ok)
	require.InDelta(t, (10 * time.Second).Seconds(), wait.Seconds(), 0.01)

	now = now.Add(10 * time.Second)
	ok, _ = set.allow("10.0.0.1")
	require.True(t, ok)
}

func TestLimiterSetSweepsIdleBuckets(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	set := newLimiterSet(RateLimitConfig{RequestsPerWindow: 60, Window: time.Minute, Burst: 5})
	set.now = func() time.Time { return now }
	set.lastSweep = now

	set.allow("device-a")
	set.allow("device-b")
	require.Equal(t, 2, set.size())

	now = now.Add(limiterIdleTTL / 2)
	set.allow("device-b")

	now = now.Add(limiterIdleTTL/2 + time.Second)
	set.allow("device-c")

	// a was idle past the TTL; b was seen half a TTL ago.
	require.Equal(t, 2, set.size())
	_, kept := set.buckets["device-b"]
	require.True(t, kept)
	_, dropped := set.buckets["device-a"]
	require.False(t, dropped)
}
