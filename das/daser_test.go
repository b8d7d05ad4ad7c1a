package das

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ipfs/go-datastore"
	ds_sync "github.com/ipfs/go-datastore/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/celestia-light/events"
	"github.com/celestiaorg/celestia-light/fraud"
	"github.com/celestiaorg/celestia-light/header/headertest"
	"github.com/celestiaorg/celestia-light/share"
)

// TestDASerLifecycle ensures every known header gets sampled and the
// checkpoint lands at the network head.
func TestDASerLifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)
	store := headertest.NewStore(t, suite, 30)
	sub := headertest.NewSubscriber()
	avail := &recordingAvailability{sampled: make(map[uint64]int)}
	ds := ds_sync.MutexWrap(datastore.NewMapDatastore())

	daser, err := NewDASer(avail, sub, store, ds, fraud.NewService())
	require.NoError(t, err)
	require.NoError(t, daser.Start(ctx))

	// a new network head arriving via subscription moves sampling forward
	head := suite.NextHeader()
	sub.Headers <- head

	// wait for the coordinator to pick the head up before watching catchup
	require.Eventually(t, func() bool {
		return avail.sampledAt(head.Height) > 0
	}, time.Second*10, time.Millisecond*10)
	require.NoError(t, daser.WaitCatchUp(ctx))
	require.NoError(t, daser.Stop(ctx))

	for height := uint64(1); height <= head.Height; height++ {
		assert.GreaterOrEqual(t, avail.sampledAt(height), 1, "height %d was not sampled", height)
	}

	// checkpoint is stored at network head
	cp, err := daser.store.load(ctx)
	require.NoError(t, err)
	assert.Equal(t, head.Height+1, cp.SampleFrom)
	assert.Equal(t, head.Height, cp.NetworkHead)
	assert.Empty(t, cp.Failed)
}

func TestDASer_Restart(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)
	store := headertest.NewStore(t, suite, 10)
	sub := headertest.NewSubscriber()
	avail := &recordingAvailability{sampled: make(map[uint64]int)}
	ds := ds_sync.MutexWrap(datastore.NewMapDatastore())

	daser, err := NewDASer(avail, sub, store, ds, fraud.NewService())
	require.NoError(t, err)
	require.NoError(t, daser.Start(ctx))

	head := suite.NextHeader()
	require.NoError(t, store.Append(ctx, head))
	sub.Headers <- head

	require.Eventually(t, func() bool {
		return avail.sampledAt(head.Height) > 0
	}, time.Second*10, time.Millisecond*10)
	require.NoError(t, daser.WaitCatchUp(ctx))
	require.NoError(t, daser.Stop(ctx))

	// extend the chain and restart from the stored checkpoint
	newHeaders := suite.GenExtendedHeaders(5)
	require.NoError(t, store.Append(ctx, newHeaders...))

	restarted, err := NewDASer(avail, sub, store, ds, fraud.NewService())
	require.NoError(t, err)
	require.NoError(t, restarted.Start(ctx))

	newHead := newHeaders[len(newHeaders)-1]
	sub.Headers <- newHead

	require.Eventually(t, func() bool {
		return avail.sampledAt(newHead.Height) > 0
	}, time.Second*10, time.Millisecond*10)
	require.NoError(t, restarted.WaitCatchUp(ctx))
	require.NoError(t, restarted.Stop(ctx))

	for height := uint64(1); height <= newHead.Height; height++ {
		assert.GreaterOrEqual(t, avail.sampledAt(height), 1, "height %d was not sampled", height)
	}
}

// TestDASer_SamplingFailureIsRetried ensures a height that failed to sample is
// picked up again by a retry worker.
func TestDASer_SamplingFailureIsRetried(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)
	store := headertest.NewStore(t, suite, 10)
	sub := headertest.NewSubscriber()
	avail := &recordingAvailability{
		sampled:  make(map[uint64]int),
		failures: map[uint64]int{5: 2},
	}
	ds := ds_sync.MutexWrap(datastore.NewMapDatastore())

	daser, err := NewDASer(avail, sub, store, ds, fraud.NewService(),
		WithBackoff(time.Millisecond, 2, 4))
	require.NoError(t, err)
	require.NoError(t, daser.Start(ctx))

	head := suite.NextHeader()
	sub.Headers <- head

	require.Eventually(t, func() bool {
		return avail.sampledAt(head.Height) > 0
	}, time.Second*10, time.Millisecond*10)
	require.NoError(t, daser.WaitCatchUp(ctx))
	require.NoError(t, daser.Stop(ctx))

	// two failed attempts plus the successful retry
	assert.Equal(t, 3, avail.sampledAt(5))
}

// TestDASer_Byzantine ensures a byzantine error observed during sampling is
// escalated to the fraud service as a bad encoding proof.
func TestDASer_Byzantine(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)
	store := headertest.NewStore(t, suite, 10)
	sub := headertest.NewSubscriber()
	avail := &recordingAvailability{
		sampled: make(map[uint64]int),
		byzantine: map[uint64]share.SampleCoords{
			3: {Row: 1, Col: 2},
		},
	}
	ds := ds_sync.MutexWrap(datastore.NewMapDatastore())
	fservice := fraud.NewService()
	fsub := fservice.Subscribe()
	defer fsub.Cancel()

	daser, err := NewDASer(avail, sub, store, ds, fservice)
	require.NoError(t, err)
	require.NoError(t, daser.Start(ctx))

	sub.Headers <- suite.NextHeader()

	proof, err := fsub.Proof(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, proof.Height())
	assert.Equal(t, share.SampleCoords{Row: 1, Col: 2}, proof.Coords)

	require.NoError(t, daser.Stop(ctx))
}

// TestDASer_StopPersistsCheckpoint ensures Stop returns promptly after the
// coordinator loop has exited and still persists the final checkpoint.
func TestDASer_StopPersistsCheckpoint(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)
	store := headertest.NewStore(t, suite, 10)
	sub := headertest.NewSubscriber()
	avail := &recordingAvailability{sampled: make(map[uint64]int)}
	ds := ds_sync.MutexWrap(datastore.NewMapDatastore())

	daser, err := NewDASer(avail, sub, store, ds, fraud.NewService())
	require.NoError(t, err)
	require.NoError(t, daser.Start(ctx))

	head := suite.NextHeader()
	sub.Headers <- head

	require.Eventually(t, func() bool {
		return avail.sampledAt(head.Height) > 0
	}, time.Second*10, time.Millisecond*10)
	require.NoError(t, daser.WaitCatchUp(ctx))

	stopped := make(chan error, 1)
	go func() {
		stopped <- daser.Stop(ctx)
	}()

	select {
	case err := <-stopped:
		require.NoError(t, err)
	case <-time.After(time.Second * 5):
		t.Fatal("Stop did not return")
	}

	cp, err := daser.store.load(ctx)
	require.NoError(t, err)
	assert.Equal(t, head.Height+1, cp.SampleFrom)
	assert.Equal(t, head.Height, cp.NetworkHead)
}

func TestDASer_DoubleStart(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)
	store := headertest.NewStore(t, suite, 1)
	sub := headertest.NewSubscriber()
	avail := &recordingAvailability{sampled: make(map[uint64]int)}
	ds := ds_sync.MutexWrap(datastore.NewMapDatastore())

	daser, err := NewDASer(avail, sub, store, ds, fraud.NewService())
	require.NoError(t, err)
	require.NoError(t, daser.Start(ctx))
	assert.Error(t, daser.Start(ctx))
	require.NoError(t, daser.Stop(ctx))
}

// TestDASer_StuckSamplerReportsFatal ensures a sampler that cannot shut down
// within the stop deadline is reported through the event publisher.
func TestDASer_StuckSamplerReportsFatal(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)
	store := headertest.NewStore(t, suite, 1)
	sub := headertest.NewSubscriber()
	avail := &blockingAvailability{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	t.Cleanup(func() { close(avail.release) })
	ds := ds_sync.MutexWrap(datastore.NewMapDatastore())

	bus := events.NewBus()
	esub := bus.Subscribe()
	defer esub.Cancel()

	daser, err := NewDASer(avail, sub, store, ds, fraud.NewService(), WithEvents(bus))
	require.NoError(t, err)
	require.NoError(t, daser.Start(ctx))

	select {
	case <-avail.started:
	case <-ctx.Done():
		t.Fatal("sampling never started")
	}

	stopCtx, stopCancel := context.WithTimeout(ctx, time.Millisecond*500)
	defer stopCancel()
	err = daser.Stop(stopCtx)
	require.ErrorContains(t, err, "sampler stuck")

	select {
	case e := <-esub.Events():
		require.Equal(t, events.TypeFatalDaserError, e.Type())
	case <-ctx.Done():
		t.Fatal("no fatal event published")
	}
}

// recordingAvailability counts sampling attempts per height and can be
// programmed to fail or report byzantine data for chosen heights.
type recordingAvailability struct {
	lk      sync.Mutex
	sampled map[uint64]int
	// failures maps a height to the amount of attempts that fail before
	// sampling succeeds
	failures  map[uint64]int
	byzantine map[uint64]share.SampleCoords
}

func (a *recordingAvailability) SharesAvailable(_ context.Context, _ *share.Root, height uint64) error {
	a.lk.Lock()
	defer a.lk.Unlock()

	a.sampled[height]++
	if coords, ok := a.byzantine[height]; ok {
		return &share.ErrByzantine{Height: height, Coords: coords}
	}
	if left := a.failures[height]; left > 0 {
		a.failures[height] = left - 1
		return share.ErrNotAvailable
	}
	return nil
}

func (a *recordingAvailability) sampledAt(height uint64) int {
	a.lk.Lock()
	defer a.lk.Unlock()
	return a.sampled[height]
}

// blockingAvailability blocks sampling until released, ignoring context
// cancellation the way a stuck network request would.
type blockingAvailability struct {
	startOnce sync.Once
	started   chan struct{}
	release   chan struct{}
}

func (a *blockingAvailability) SharesAvailable(context.Context, *share.Root, uint64) error {
	a.startOnce.Do(func() { close(a.started) })
	<-a.release
	return nil
}
