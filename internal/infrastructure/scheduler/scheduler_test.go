package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRejectsBadSpec(t *testing.T) {
	s := New(time.Second)
	assert.Error(t, s.Register("broken", "not a cron spec", func(context.Context) error { return nil }))
	assert.Empty(t, s.Jobs())
}

func TestRegisterAndRunNow(t *testing.T) {
	s := New(time.Second)

	ran := 0
	job := func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		ran++
		return nil
	}
	require.NoError(t, s.Register("index refresh", "*/10 * * * *", job))
	assert.Equal(t, []string{"index refresh"}, s.Jobs())

	s.RunNow("index refresh", job)
	s.RunNow("failing", func(context.Context) error { return errors.New("boom") })
	assert.Equal(t, 1, ran)

	s.Start()
	s.Stop()
}
