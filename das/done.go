package das

import (
	"context"
)

// done tracks the shutdown of a single background routine.
type done struct {
	name     string
	finished chan struct{}
}

func newDone(name string) done {
	return done{
		name:     name,
		finished: make(chan struct{}),
	}
}

func (d *done) indicateDone() {
	close(d.finished)
}

// wait blocks until the routine indicated it is done or the context is canceled.
func (d *done) wait(ctx context.Context) error {
	select {
	case <-d.finished:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
