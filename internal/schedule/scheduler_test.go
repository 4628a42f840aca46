package schedule

import (
	"context"
	stderrors "errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
)

func TestNewRejectsNonPositiveInterval(t *testing.T) {
	_, err := New(0, func(context.Context) error { return nil })
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestRunRepeatsUntilCanceled(t *testing.T) {
	var calls atomic.Int32
	s, err := New(50*time.Millisecond, func(context.Context) error {
		// Failures are logged and the schedule keeps going.
		if calls.Add(1) == 1 {
			return stderrors.New("fetch failed")
		}
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, 3*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.GreaterOrEqual(t, s.Runs(), int64(3))
}
