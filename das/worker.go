package das

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/celestiaorg/celestia-light/header"
)

// jobType defines the position of the job in the sampling queue.
type jobType string

const (
	recentJob  jobType = "recent"
	catchupJob jobType = "catchup"
	retryJob   jobType = "retry"
)

// job represents a headers interval to be processed by a worker
type job struct {
	id      int
	jobType jobType
	from    uint64
	to      uint64

	// header is set for recent jobs, so the worker can skip a store round trip
	header *header.ExtendedHeader
}

// sampleFn is the actual DA check performed over a single header.
type sampleFn func(context.Context, *header.ExtendedHeader) error

type worker struct {
	lock  sync.Mutex
	state workerState

	getter   header.Getter
	sampleFn sampleFn
	metrics  *metrics
}

// workerState contains important information about the state of a
// current sampling routine.
type workerState struct {
	job

	curr   uint64
	err    error
	failed map[uint64]int
}

func newWorker(
	j job,
	getter header.Getter,
	sample sampleFn,
	metrics *metrics,
) worker {
	return worker{
		state: workerState{
			job:    j,
			curr:   j.from,
			failed: make(map[uint64]int),
		},
		getter:   getter,
		sampleFn: sample,
		metrics:  metrics,
	}
}

func (w *worker) run(ctx context.Context, timeout time.Duration, resultCh chan<- result) {
	jobStart := time.Now()
	log.Debugw("start sampling worker", "from", w.state.from, "to", w.state.to)

	for curr := w.state.from; curr <= w.state.to; curr++ {
		err := w.sample(ctx, timeout, curr)
		if errors.Is(err, context.Canceled) {
			// sampling worker will resume upon restart
			break
		}
		w.setResult(curr, err)
	}

	if w.state.curr > w.state.from {
		jobTime := time.Since(jobStart)
		log.Infow("sampled headers", "type", w.state.jobType, "from", w.state.from,
			"to", w.state.curr, "finished (s)", jobTime.Seconds())
	}

	select {
	case resultCh <- result{
		job:    w.state.job,
		failed: w.state.failed,
		err:    w.state.err,
	}:
	case <-ctx.Done():
	}
}

func (w *worker) sample(ctx context.Context, timeout time.Duration, height uint64) error {
	h, err := w.getHeader(ctx, height)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err = w.sampleFn(ctx, h)
	w.metrics.observeSample(ctx, h, time.Since(start), w.state.jobType, err)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Debugw(
				"failed to sample header",
				"type", w.state.jobType,
				"height", h.Height,
				"hash", h.Hash(),
				"square width", h.DAH.SquareWidth(),
				"data root", h.DAH.String(),
				"err", err,
				"finished (s)", time.Since(start).Seconds(),
			)
		}
		return err
	}

	log.Debugw(
		"sampled header",
		"type", w.state.jobType,
		"height", h.Height,
		"hash", h.Hash(),
		"square width", h.DAH.SquareWidth(),
		"finished (s)", time.Since(start).Seconds(),
	)
	return nil
}

func (w *worker) getHeader(ctx context.Context, height uint64) (*header.ExtendedHeader, error) {
	if w.state.header != nil {
		return w.state.header, nil
	}

	// TODO: get headers in batches
	start := time.Now()
	h, err := w.getter.GetByHeight(ctx, height)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Errorw("failed to get header from header store", "height", height,
				"finished (s)", time.Since(start).Seconds())
		}
		return nil, err
	}

	w.metrics.observeGetHeader(ctx, time.Since(start))

	log.Debugw(
		"got header from header store",
		"height", h.Height,
		"hash", h.Hash(),
		"square width", h.DAH.SquareWidth(),
		"finished (s)", time.Since(start).Seconds(),
	)
	return h, nil
}

func (w *worker) setResult(curr uint64, err error) {
	w.lock.Lock()
	defer w.lock.Unlock()
	if err != nil {
		w.state.failed[curr]++
		w.state.err = multierr.Append(w.state.err, fmt.Errorf("height: %d, err: %w", curr, err))
	}
	w.state.curr = curr
}

func (w *worker) getState() workerState {
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.state
}
