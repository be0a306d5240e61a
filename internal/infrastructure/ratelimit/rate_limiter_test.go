package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowBurstThenRefuse(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	ok, _ := rl.Allow("u1", ActionToggle)
	assert.True(t, ok)
	ok, _ = rl.Allow("u1", ActionToggle)
	assert.True(t, ok)

	ok, wait := rl.Allow("u1", ActionToggle)
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))
}

func TestBucketsAreKeyedByUserAndAction(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	ok, _ := rl.Allow("u1", ActionToggle)
	assert.True(t, ok)
	ok, _ = rl.Allow("u2", ActionToggle)
	assert.True(t, ok)
	ok, _ = rl.Allow("u1", ActionReview)
	assert.True(t, ok)

	assert.Len(t, rl.buckets, 3)
}

func TestContributeHasOwnLimit(t *testing.T) {
	rl := NewRateLimiter(100, 100)

	for i := 0; i < 3; i++ {
		ok, _ := rl.Allow("u1", ActionContribute)
		assert.True(t, ok)
	}
	ok, _ := rl.Allow("u1", ActionContribute)
	assert.False(t, ok)
}

func TestCleanupRemovesIdleBuckets(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	clock := time.Now()
	rl.now = func() time.Time { return clock }

	rl.Allow("u1", ActionToggle)
	clock = clock.Add(2 * time.Hour)
	rl.Allow("u2", ActionToggle)

	assert.Equal(t, 1, rl.Cleanup(time.Hour))
	assert.Len(t, rl.buckets, 1)
}
