package throttle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBurstThenDeny(t *testing.T) {
	rl := NewRateLimiter(0.01, 3)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return base }

	for i := 0; i < 3; i++ {
		require.True(t, rl.Allow("alice"), "attempt %d", i)
	}
	require.False(t, rl.Allow("alice"))

	// keys are independent
	require.True(t, rl.Allow("bob"))
}

func TestRefill(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	require.True(t, rl.Allow("alice"))
	require.False(t, rl.Allow("alice"))

	now = now.Add(time.Second)
	require.True(t, rl.Allow("alice"))
}

func TestResetAndStale(t *testing.T) {
	rl := NewRateLimiter(0.01, 1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	require.True(t, rl.Allow("alice"))
	require.False(t, rl.Allow("alice"))
	rl.Reset("alice")
	require.True(t, rl.Allow("alice"))

	rl.Allow("bob")
	now = now.Add(staleAfter + time.Second)
	rl.Allow("carol")
	require.NotContains(t, rl.clients, "bob")
	require.NotContains(t, rl.clients, "alice")
	require.Contains(t, rl.clients, "carol")
}
