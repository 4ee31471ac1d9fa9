// Package retry re-runs an operation with exponential backoff and
// jitter until it succeeds or the attempt budget runs out.
package retry

import (
	"context"
	"math/rand"
	"time"
)

// Config bounds the retry loop. The delay starts at InitialDelay and
// grows by BackoffFactor per attempt up to MaxDelay; every sleep adds
// up to Jitter of random slack.
type Config struct {
	MaxRetries    int
	BackoffFactor float64
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	Jitter        time.Duration
}

// Retrier runs operations under one retry policy. Safe for concurrent
// use.
type Retrier struct {
	cfg *Config
}

func NewRetrier(cfg *Config) *Retrier {
	return &Retrier{cfg: cfg}
}

// Do calls op until it returns nil or MaxRetries extra attempts are
// spent, sleeping between attempts. The last error is returned as-is;
// a canceled ctx cuts the loop short with ctx.Err().
func (r *Retrier) Do(ctx context.Context, op func() error) error {
	delay := r.cfg.InitialDelay
	for attempt := 0; ; attempt++ {
		err := op()
		if err == nil {
			return nil
		}
		if attempt >= r.cfg.MaxRetries {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay + r.jitter()):
		}

		delay = time.Duration(float64(delay) * r.cfg.BackoffFactor)
		if delay > r.cfg.MaxDelay {
			delay = r.cfg.MaxDelay
		}
	}
}

func (r *Retrier) jitter() time.Duration {
	if r.cfg.Jitter <= 0 {
		return 0
	}
	return time.Duration(rand.Float64() * float64(r.cfg.Jitter))
}
