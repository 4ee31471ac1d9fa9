package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(maxRetries int) *Config {
	return &Config{
		MaxRetries:    maxRetries,
		BackoffFactor: 2,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		Jitter:        0,
	}
}

func TestDoFirstAttemptSucceeds(t *testing.T) {
	calls := 0
	err := NewRetrier(fastConfig(3)).Do(context.Background(), func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoRecoversAfterFailures(t *testing.T) {
	calls := 0
	err := NewRetrier(fastConfig(3)).Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoExhaustsAttempts(t *testing.T) {
	sentinel := errors.New("still down")

	calls := 0
	err := NewRetrier(fastConfig(2)).Do(context.Background(), func() error {
		calls++
		return sentinel
	})

	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 3, calls, "one initial attempt plus two retries")
}

func TestDoStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := fastConfig(3)
	cfg.InitialDelay = time.Hour

	calls := 0
	err := NewRetrier(cfg).Do(ctx, func() error {
		calls++
		return errors.New("transient")
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDoBacksOffBetweenAttempts(t *testing.T) {
	cfg := &Config{
		MaxRetries:    3,
		BackoffFactor: 2,
		InitialDelay:  10 * time.Millisecond,
		MaxDelay:      time.Second,
		Jitter:        0,
	}

	start := time.Now()
	err := NewRetrier(cfg).Do(context.Background(), func() error {
		return errors.New("transient")
	})
	elapsed := time.Since(start)

	require.Error(t, err)
	// Sleeps of 10ms, 20ms and 40ms separate the four attempts.
	assert.GreaterOrEqual(t, elapsed, 70*time.Millisecond)
}
