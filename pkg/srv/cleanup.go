package srv

import "context"

// NewCleanup wraps a close function as a Service so one-shot teardown
// can join the shutdown sequence.
func NewCleanup(fn func() error) Service {
	return cleanupFunc(fn)
}

// cleanupFunc acts only at shutdown; Start has nothing to do.
type cleanupFunc func() error

func (cleanupFunc) Start(context.Context) error { return nil }

func (f cleanupFunc) Shutdown(context.Context) error {
	if f == nil {
		return nil
	}
	return f()
}
