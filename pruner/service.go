// Package pruner removes historical headers and their sampling artifacts
// once they fall out of the configured retention depth.
package pruner

import (
	"context"
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/namespace"
	logging "github.com/ipfs/go-log/v2"

	"github.com/celestiaorg/celestia-light/events"
	"github.com/celestiaorg/celestia-light/header"
	sync "github.com/celestiaorg/celestia-light/header/sync"
)

var log = logging.Logger("pruner")

// Pruner removes per-height sampling artifacts for heights [from:to).
type Pruner interface {
	DeleteSamples(ctx context.Context, from, to uint64) error
}

// SyncState provides a view into the syncer's progress, so a sweep never
// removes headers an in-flight sync may still touch.
type SyncState interface {
	State() sync.State
}

// Service prunes headers and sampling results outside of the retention
// depth on a fixed cycle.
type Service struct {
	params Params

	pruner    Pruner
	hstore    header.Store
	syncState SyncState
	events    events.Publisher

	ds         datastore.Datastore
	checkpoint *checkpoint

	clock  clock.Clock
	cancel context.CancelFunc
	doneCh chan struct{}

	metrics *metrics
}

// NewService creates a new pruning Service.
func NewService(
	pruner Pruner,
	syncState SyncState,
	hstore header.Store,
	ds datastore.Batching,
	bus events.Publisher,
	opts ...Option,
) (*Service, error) {
	params := DefaultParams()
	for _, opt := range opts {
		opt(&params)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if bus == nil {
		bus = (*events.Bus)(nil)
	}

	return &Service{
		params:    params,
		pruner:    pruner,
		syncState: syncState,
		hstore:    hstore,
		events:    bus,
		ds:        namespace.Wrap(ds, storePrefix),
		clock:     clock.New(),
		doneCh:    make(chan struct{}),
	}, nil
}

// Start loads the checkpoint and kicks off the pruning loop.
func (s *Service) Start(ctx context.Context) error {
	if err := s.loadCheckpoint(ctx); err != nil {
		return fmt.Errorf("pruner: loading checkpoint: %w", err)
	}
	log.Debugw("loaded checkpoint", "lastPruned", s.checkpoint.LastPrunedHeight)

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.run(runCtx)
	return nil
}

// Stop stops the pruning loop.
func (s *Service) Stop(ctx context.Context) error {
	s.cancel()

	select {
	case <-s.doneCh:
		return s.metrics.close()
	case <-ctx.Done():
		err := fmt.Errorf("pruner: stopping loop: %w", ctx.Err())
		s.events.Publish(events.FatalPrunerError{Error: err.Error()})
		return err
	}
}

func (s *Service) run(ctx context.Context) {
	defer close(s.doneCh)

	ticker := s.clock.Ticker(s.params.PruneCycle)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.prune(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// prune performs a single sweep. Failures leave the checkpoint untouched, so
// the same range is retried on the next cycle.
func (s *Service) prune(ctx context.Context) {
	cutoff := s.pruneCutoff()
	lastPruned := s.checkpoint.LastPrunedHeight
	if cutoff <= lastPruned+1 {
		// nothing eligible yet
		return
	}

	// sampling results go first: a header that outlives its sampling result
	// is harmless, the reverse would leak datastore entries forever
	if err := s.pruner.DeleteSamples(ctx, lastPruned+1, cutoff); err != nil {
		log.Errorw("failed to delete sampling results, will retry next cycle",
			"from", lastPruned+1, "to", cutoff, "err", err)
		s.metrics.observePrune(ctx, true)
		return
	}

	if err := s.hstore.DeleteTo(ctx, cutoff); err != nil {
		log.Errorw("failed to delete headers, will retry next cycle",
			"to", cutoff, "err", err)
		s.metrics.observePrune(ctx, true)
		return
	}

	if err := s.updateCheckpoint(ctx, cutoff-1); err != nil {
		log.Errorw("failed to store checkpoint", "err", err)
		s.metrics.observePrune(ctx, true)
		return
	}

	log.Infow("pruned headers", "from", lastPruned+1, "to", cutoff-1)
	s.metrics.observePrune(ctx, false)
	s.events.Publish(events.PrunedHeaders{ToHeight: cutoff - 1})
}

// pruneCutoff returns the height everything below which is eligible for
// pruning. It is derived from the retention depth and clamped below any
// in-flight sync range.
func (s *Service) pruneCutoff() uint64 {
	head := s.hstore.Height()
	if head <= s.params.RetentionDepth {
		return 0
	}
	cutoff := head - s.params.RetentionDepth

	state := s.syncState.State()
	if !state.Finished() && state.FromHeight < cutoff {
		cutoff = state.FromHeight
	}
	return cutoff
}
