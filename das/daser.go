package das

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/ipfs/go-datastore"
	logging "github.com/ipfs/go-log/v2"

	"github.com/celestiaorg/celestia-light/events"
	"github.com/celestiaorg/celestia-light/fraud"
	"github.com/celestiaorg/celestia-light/header"
	"github.com/celestiaorg/celestia-light/share"
)

var log = logging.Logger("das")

// DASer continuously validates availability of data committed to headers.
type DASer struct {
	params Parameters

	da       share.Availability
	reporter fraud.Reporter
	hsub     header.Subscriber
	getter   header.Getter

	sampler    *samplingCoordinator
	store      checkpointStore
	subscriber subscriber
	events     events.Publisher

	cancel  context.CancelFunc
	running int32
}

// NewDASer creates a new DASer.
func NewDASer(
	da share.Availability,
	hsub header.Subscriber,
	getter header.Getter,
	dstore datastore.Datastore,
	reporter fraud.Reporter,
	options ...Option,
) (*DASer, error) {
	d := &DASer{
		params:     DefaultParameters(),
		da:         da,
		reporter:   reporter,
		hsub:       hsub,
		getter:     getter,
		store:      newCheckpointStore(dstore),
		subscriber: newSubscriber(),
		events:     (*events.Bus)(nil),
	}

	for _, applyOpt := range options {
		applyOpt(d)
	}

	if err := d.params.Validate(); err != nil {
		return nil, err
	}

	d.sampler = newSamplingCoordinator(d.params, getter, d.sample)
	return d, nil
}

// Start initiates subscription for new ExtendedHeaders and spawns the sampling routines.
func (d *DASer) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&d.running, 0, 1) {
		return errors.New("da: DASer already started")
	}

	sub, err := d.hsub.Subscribe()
	if err != nil {
		return err
	}

	// load latest DASed checkpoint
	cp, err := d.store.load(ctx)
	if err != nil {
		log.Warnw("checkpoint not found, initializing with default values", "height", d.params.SampleFrom)

		cp = checkpoint{
			SampleFrom:  d.params.SampleFrom,
			NetworkHead: d.params.SampleFrom,
		}
	}
	log.Info("starting DASer from checkpoint: ", cp.String())

	runCtx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	go d.sampler.run(runCtx, cp)
	go d.subscriber.run(runCtx, sub, d.sampler.listen)
	go d.store.runBackgroundStore(runCtx, d.params.BackgroundStoreInterval, d.sampler.getCheckpoint)

	return nil
}

// Stop stops sampling and stores the latest checkpoint to disk.
func (d *DASer) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&d.running, 1, 0) {
		return nil
	}

	// try to store checkpoint without waiting for coordinator and workers to stop
	cp, err := d.sampler.getCheckpoint(ctx)
	if err != nil {
		log.Error("DASer coordinator checkpoint is unavailable")
	} else if err = d.store.store(ctx, cp); err != nil {
		log.Errorw("storing checkpoint to disk", "err", err)
	}

	d.cancel()
	if err = d.sampler.wait(ctx); err != nil {
		err = fmt.Errorf("sampler stuck: %w", err)
		d.events.Publish(events.FatalDaserError{Error: err.Error()})
		return err
	}

	// save updated checkpoint after sampler and all workers are shut down.
	// the coordinator loop has exited, so its state is read directly here.
	cp = newCheckpoint(d.sampler.state.unsafeStats())
	if err = d.store.store(ctx, cp); err != nil {
		log.Errorw("storing checkpoint to disk", "err", err)
	}

	if err = d.subscriber.wait(ctx); err != nil {
		err = fmt.Errorf("subscriber stuck: %w", err)
		d.events.Publish(events.FatalDaserError{Error: err.Error()})
		return err
	}
	if err = d.store.wait(ctx); err != nil {
		err = fmt.Errorf("background store stuck: %w", err)
		d.events.Publish(events.FatalDaserError{Error: err.Error()})
		return err
	}
	return nil
}

// sample validates availability of a single header. A provably broken
// data-availability guarantee is escalated to the fraud Reporter, everything
// else is a plain sampling failure the coordinator will retry.
func (d *DASer) sample(ctx context.Context, h *header.ExtendedHeader) error {
	err := d.da.SharesAvailable(ctx, h.DAH, h.Height)
	if err == nil {
		return nil
	}

	var byzErr *share.ErrByzantine
	if errors.As(err, &byzErr) {
		log.Errorw("detected byzantine header", "height", h.Height, "err", byzErr)
		proof := fraud.CreateBadEncodingProof(h.Hash(), h.Height, byzErr)
		if reportErr := d.reporter.Report(ctx, proof); reportErr != nil {
			log.Errorw("reporting bad encoding proof", "height", h.Height, "err", reportErr)
		}
	}
	return err
}

// SamplingStats returns the current statistics over the DA sampling process.
func (d *DASer) SamplingStats(ctx context.Context) (SamplingStats, error) {
	return d.sampler.stats(ctx)
}

// WaitCatchUp waits for DASer to indicate catchup is done
func (d *DASer) WaitCatchUp(ctx context.Context) error {
	return d.sampler.state.waitCatchUp(ctx)
}
