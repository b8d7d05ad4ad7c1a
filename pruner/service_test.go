package pruner

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/ipfs/go-datastore"
	ds_sync "github.com/ipfs/go-datastore/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/celestia-light/events"
	"github.com/celestiaorg/celestia-light/header/headertest"
	sync "github.com/celestiaorg/celestia-light/header/sync"
)

func TestService_Prune(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)
	store := headertest.NewStore(t, suite, 50)
	mp := &mockPruner{}
	bus := events.NewBus()
	sub := bus.Subscribe()
	defer sub.Cancel()

	serv, err := NewService(
		mp,
		finishedSync{},
		store,
		ds_sync.MutexWrap(datastore.NewMapDatastore()),
		bus,
		WithRetentionDepth(10),
	)
	require.NoError(t, err)
	require.NoError(t, serv.loadCheckpoint(ctx))

	serv.prune(ctx)

	// with head at 50 and a depth of 10, everything below 40 goes
	assert.EqualValues(t, 39, serv.checkpoint.LastPrunedHeight)
	assert.Equal(t, [][2]uint64{{1, 40}}, mp.deleted)

	tail, err := store.Tail(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 40, tail.Height)

	// exactly one event per effective sweep
	e := <-sub.Events()
	require.Equal(t, events.TypePrunedHeaders, e.Type())
	assert.EqualValues(t, 39, e.(events.PrunedHeaders).ToHeight)

	// nothing else became eligible, so the next sweep is a no-op
	serv.prune(ctx)
	select {
	case <-sub.Events():
		t.Fatal("no event expected for a no-op sweep")
	default:
	}
}

// TestService_PruneClampedBySync ensures a sweep never removes headers an
// in-flight sync still works on.
func TestService_PruneClampedBySync(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)
	store := headertest.NewStore(t, suite, 50)
	mp := &mockPruner{}

	serv, err := NewService(
		mp,
		inFlightSync{from: 25},
		store,
		ds_sync.MutexWrap(datastore.NewMapDatastore()),
		nil,
		WithRetentionDepth(10),
	)
	require.NoError(t, err)
	require.NoError(t, serv.loadCheckpoint(ctx))

	serv.prune(ctx)

	assert.EqualValues(t, 24, serv.checkpoint.LastPrunedHeight)
	tail, err := store.Tail(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 25, tail.Height)
}

// TestService_FailureRetriedNextCycle ensures a failed sweep leaves the
// checkpoint untouched and the range is retried.
func TestService_FailureRetriedNextCycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)
	store := headertest.NewStore(t, suite, 50)
	mp := &mockPruner{failures: 1}

	serv, err := NewService(
		mp,
		finishedSync{},
		store,
		ds_sync.MutexWrap(datastore.NewMapDatastore()),
		nil,
		WithRetentionDepth(10),
	)
	require.NoError(t, err)
	require.NoError(t, serv.loadCheckpoint(ctx))

	serv.prune(ctx)
	assert.EqualValues(t, 0, serv.checkpoint.LastPrunedHeight)

	serv.prune(ctx)
	assert.EqualValues(t, 39, serv.checkpoint.LastPrunedHeight)
}

// TestService_Lifecycle drives the pruning loop through the mocked clock.
func TestService_Lifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)
	store := headertest.NewStore(t, suite, 50)
	mp := &mockPruner{}
	bus := events.NewBus()
	sub := bus.Subscribe()
	defer sub.Cancel()

	serv, err := NewService(
		mp,
		finishedSync{},
		store,
		ds_sync.MutexWrap(datastore.NewMapDatastore()),
		bus,
		WithRetentionDepth(10),
		WithPruneCycle(time.Minute),
	)
	require.NoError(t, err)

	mock := clock.NewMock()
	serv.clock = mock
	require.NoError(t, serv.Start(ctx))

	// let the loop register its ticker before moving time forward
	time.Sleep(10 * time.Millisecond)
	mock.Add(time.Minute)

	select {
	case e := <-sub.Events():
		assert.EqualValues(t, 39, e.(events.PrunedHeaders).ToHeight)
	case <-ctx.Done():
		t.Fatal("no prune event before timeout")
	}

	require.NoError(t, serv.Stop(ctx))
}

// TestService_StuckLoopReportsFatal ensures a pruning loop that cannot shut
// down within the stop deadline is reported through the event publisher.
func TestService_StuckLoopReportsFatal(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)
	store := headertest.NewStore(t, suite, 50)
	mp := &stuckPruner{started: make(chan struct{}), release: make(chan struct{})}
	t.Cleanup(func() { close(mp.release) })
	bus := events.NewBus()
	sub := bus.Subscribe()
	defer sub.Cancel()

	serv, err := NewService(
		mp,
		finishedSync{},
		store,
		ds_sync.MutexWrap(datastore.NewMapDatastore()),
		bus,
		WithRetentionDepth(10),
		WithPruneCycle(time.Minute),
	)
	require.NoError(t, err)

	mock := clock.NewMock()
	serv.clock = mock
	require.NoError(t, serv.Start(ctx))

	// let the loop register its ticker before moving time forward
	time.Sleep(10 * time.Millisecond)
	mock.Add(time.Minute)

	select {
	case <-mp.started:
	case <-ctx.Done():
		t.Fatal("sweep never started")
	}

	stopCtx, stopCancel := context.WithTimeout(ctx, time.Millisecond*100)
	defer stopCancel()
	require.Error(t, serv.Stop(stopCtx))

	select {
	case e := <-sub.Events():
		require.Equal(t, events.TypeFatalPrunerError, e.Type())
	case <-ctx.Done():
		t.Fatal("no fatal pruner event published")
	}
}

type mockPruner struct {
	deleted [][2]uint64
	// failures is the amount of DeleteSamples calls that fail before calls
	// start succeeding
	failures int
}

func (m *mockPruner) DeleteSamples(_ context.Context, from, to uint64) error {
	if m.failures > 0 {
		m.failures--
		return fmt.Errorf("delete samples [%d:%d): datastore unavailable", from, to)
	}
	m.deleted = append(m.deleted, [2]uint64{from, to})
	return nil
}

// stuckPruner blocks a sweep until released, ignoring context cancellation
// the way a stuck datastore would.
type stuckPruner struct {
	started chan struct{}
	release chan struct{}
}

func (m *stuckPruner) DeleteSamples(context.Context, uint64, uint64) error {
	select {
	case <-m.started:
	default:
		close(m.started)
	}
	<-m.release
	return nil
}

type finishedSync struct{}

func (finishedSync) State() sync.State {
	return sync.State{Height: 50, FromHeight: 50, ToHeight: 50}
}

type inFlightSync struct {
	from uint64
}

func (s inFlightSync) State() sync.State {
	return sync.State{Height: s.from - 1, FromHeight: s.from, ToHeight: 50}
}
