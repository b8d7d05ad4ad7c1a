package sync

import (
	"context"
	"fmt"
	"testing"
	"time"

	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/celestia-light/events"
	"github.com/celestiaorg/celestia-light/header"
	"github.com/celestiaorg/celestia-light/header/headertest"
	"github.com/celestiaorg/celestia-light/header/local"
	"github.com/celestiaorg/celestia-light/header/store"
)

func TestSyncSimpleRequestingHead(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)
	head := suite.Head()

	remoteStore := store.NewTestStore(ctx, t, head)
	err := remoteStore.Append(ctx, suite.GenExtendedHeaders(100)...)
	require.NoError(t, err)

	_, err = remoteStore.GetByHeight(ctx, 100)
	require.NoError(t, err)

	localStore := store.NewTestStore(ctx, t, head)
	syncer, err := NewSyncer(
		local.NewExchange(remoteStore),
		localStore,
		headertest.NewSubscriber(),
		WithBlockTime(time.Second*30),
		WithTrustingPeriod(time.Microsecond),
	)
	require.NoError(t, err)
	err = syncer.Start(ctx)
	require.NoError(t, err)

	time.Sleep(time.Millisecond * 10) // needs some to realize it is syncing
	err = syncer.SyncWait(ctx)
	require.NoError(t, err)

	exp, err := remoteStore.Head(ctx)
	require.NoError(t, err)

	have, err := localStore.Head(ctx)
	require.NoError(t, err)
	assert.Equal(t, exp.Height, have.Height)
	assert.Nil(t, syncer.pending.Head())

	state := syncer.State()
	assert.Equal(t, exp.Height, state.Height)
	assert.Equal(t, uint64(2), state.FromHeight)
	assert.Equal(t, exp.Height, state.ToHeight)
	assert.True(t, state.Finished(), state)
}

func TestDoSyncFullRangeFromExternalPeer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)
	head := suite.Head()

	remoteStore := store.NewTestStore(ctx, t, head)
	localStore := store.NewTestStore(ctx, t, head)
	syncer, err := NewSyncer(
		local.NewExchange(remoteStore),
		localStore,
		headertest.NewSubscriber(),
	)
	require.NoError(t, err)
	require.NoError(t, syncer.Start(ctx))

	err = remoteStore.Append(ctx, suite.GenExtendedHeaders(int(syncer.Params.MaxRequestSize))...)
	require.NoError(t, err)
	// give store time to update heightSub index
	time.Sleep(time.Millisecond * 100)

	localHead, err := localStore.Head(ctx)
	require.NoError(t, err)

	remoteHead, err := remoteStore.Head(ctx)
	require.NoError(t, err)

	err = syncer.doSync(ctx, localHead, remoteHead)
	require.NoError(t, err)

	newHead := syncer.syncedHead.Load()
	require.NotNil(t, newHead)
	require.Equal(t, newHead.Height, remoteHead.Height)
}

func TestSyncCatchUp(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)
	head := suite.Head()

	remoteStore := store.NewTestStore(ctx, t, head)
	localStore := store.NewTestStore(ctx, t, head)
	syncer, err := NewSyncer(
		local.NewExchange(remoteStore),
		localStore,
		headertest.NewSubscriber(),
		WithTrustingPeriod(time.Minute),
	)
	require.NoError(t, err)
	// 1. Initial sync
	err = syncer.Start(ctx)
	require.NoError(t, err)

	// 2. chain grows and syncer misses that
	err = remoteStore.Append(ctx, suite.GenExtendedHeaders(100)...)
	require.NoError(t, err)

	incomingHead := suite.GenExtendedHeaders(1)[0]
	// 3. syncer rcvs header from the future and starts catching-up
	res := syncer.incomingNetworkHead(ctx, incomingHead)
	assert.Equal(t, pubsub.ValidationAccept, res)

	time.Sleep(time.Millisecond * 10) // needs some to realize it is syncing
	err = syncer.SyncWait(ctx)
	require.NoError(t, err)
	exp, err := remoteStore.Head(ctx)
	require.NoError(t, err)

	// 4. assert syncer caught-up
	have, err := localStore.Head(ctx)
	require.NoError(t, err)
	newHead := syncer.syncedHead.Load()
	require.NotNil(t, newHead)
	assert.Equal(t, newHead.Height, incomingHead.Height)
	assert.Equal(t, exp.Height+1, have.Height) // plus one as we didn't add last header to remoteStore
	assert.Nil(t, syncer.pending.Head())

	state := syncer.State()
	assert.Equal(t, exp.Height+1, state.Height)
	assert.Equal(t, uint64(2), state.FromHeight)
	assert.Equal(t, exp.Height+1, state.ToHeight)
	assert.True(t, state.Finished(), state)
}

func TestSyncPendingRangesWithMisses(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)
	head := suite.Head()

	remoteStore := store.NewTestStore(ctx, t, head)
	localStore := store.NewTestStore(ctx, t, head)
	syncer, err := NewSyncer(
		local.NewExchange(remoteStore),
		localStore,
		headertest.NewSubscriber(),
		WithTrustingPeriod(time.Minute),
	)
	require.NoError(t, err)
	err = syncer.Start(ctx)
	require.NoError(t, err)

	// miss 1 (helps to test that Syncer properly requests missed Headers from Exchange)
	err = remoteStore.Append(ctx, suite.GenExtendedHeaders(1)...)
	require.NoError(t, err)

	range1 := suite.GenExtendedHeaders(15)
	err = remoteStore.Append(ctx, range1...)
	require.NoError(t, err)

	// miss 2
	err = remoteStore.Append(ctx, suite.GenExtendedHeaders(3)...)
	require.NoError(t, err)

	range2 := suite.GenExtendedHeaders(23)
	err = remoteStore.Append(ctx, range2...)
	require.NoError(t, err)

	// manually add to pending
	for _, h := range append(range1, range2...) {
		syncer.pending.Add(h)
	}

	// and fire up a sync
	syncer.sync(ctx)

	_, err = remoteStore.GetByHeight(ctx, 43)
	require.NoError(t, err)
	_, err = localStore.GetByHeight(ctx, 43)
	require.NoError(t, err)

	lastHead := syncer.syncedHead.Load()
	require.NotNil(t, lastHead)
	require.EqualValues(t, 43, lastHead.Height)
	exp, err := remoteStore.Head(ctx)
	require.NoError(t, err)

	have, err := localStore.Head(ctx)
	require.NoError(t, err)

	assert.Equal(t, exp.Height, have.Height)
	assert.Nil(t, syncer.pending.Head()) // assert all cache from pending is used
}

// Test that only one network head is requested at a time
func TestSyncer_OnlyOneRecentRequest(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)
	localStore := store.NewTestStore(ctx, t, suite.Head())
	newHead := suite.NextHeader()
	exchange := &exchangeCountingHead{header: newHead}
	syncer, err := NewSyncer(exchange, localStore, headertest.NewSubscriber())
	require.NoError(t, err)

	res := make(chan *header.ExtendedHeader)
	for i := 0; i < 10; i++ {
		go func() {
			head, err := syncer.networkHead(ctx)
			if err != nil {
				panic(err)
			}
			select {
			case res <- head:
			case <-ctx.Done():
				return
			}
		}()
	}

	for i := 0; i < 10; i++ {
		head := <-res
		assert.Equal(t, exchange.header.Hash(), head.Hash())
	}
	assert.Equal(t, 1, exchange.counter)
}

// TestSyncer_FindHeadersReturnsCorrectRange ensures that `findHeaders` returns
// range [from;to]
func TestSyncer_FindHeadersReturnsCorrectRange(t *testing.T) {
	// Test consists of 3 steps:
	// 1. get range of headers from pending; [2;11]
	// 2. get headers from the remote store; [12;20]
	// 3. apply last header from pending;
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)
	head := suite.Head()

	remoteStore := store.NewTestStore(ctx, t, head)
	localStore := store.NewTestStore(ctx, t, head)
	syncer, err := NewSyncer(
		local.NewExchange(remoteStore),
		localStore,
		headertest.NewSubscriber(),
	)
	require.NoError(t, err)

	range1 := suite.GenExtendedHeaders(10)
	// manually add to pending
	for _, h := range range1 {
		syncer.pending.Add(h)
	}
	err = remoteStore.Append(ctx, range1...)
	require.NoError(t, err)
	err = remoteStore.Append(ctx, suite.GenExtendedHeaders(9)...)
	require.NoError(t, err)

	syncer.pending.Add(suite.GenExtendedHeaders(1)[0])
	_, err = syncer.processHeaders(ctx, 2, 21)
	require.NoError(t, err)

	newHead := syncer.syncedHead.Load()
	require.NotNil(t, newHead)
	assert.EqualValues(t, 21, newHead.Height)
}

// TestSyncFailureReportsFatal ensures a sync that dies on a network error
// surfaces it through the event publisher.
func TestSyncFailureReportsFatal(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)
	localStore := store.NewTestStore(ctx, t, suite.Head())
	syncer, err := NewSyncer(failingExchange{}, localStore, headertest.NewSubscriber())
	require.NoError(t, err)

	bus := events.NewBus()
	sub := bus.Subscribe()
	defer sub.Cancel()
	syncer.WithEvents(bus)

	// a pending head further in the future forces a fetch from the exchange
	future := suite.GenExtendedHeaders(5)
	syncer.pending.Add(future[len(future)-1])
	syncer.sync(ctx)

	for {
		select {
		case e := <-sub.Events():
			if e.Type() != events.TypeFatalSyncerError {
				continue
			}
			assert.Contains(t, e.(events.FatalSyncerError).Error, "no peers")
			return
		case <-ctx.Done():
			t.Fatal("no fatal syncer event published")
		}
	}
}

type failingExchange struct{}

func (failingExchange) Head(context.Context) (*header.ExtendedHeader, error) {
	return nil, fmt.Errorf("no peers")
}

func (failingExchange) GetByHeight(context.Context, uint64) (*header.ExtendedHeader, error) {
	return nil, fmt.Errorf("no peers")
}

func (failingExchange) GetRangeByHeight(context.Context, uint64, uint64) ([]*header.ExtendedHeader, error) {
	return nil, fmt.Errorf("no peers")
}

type exchangeCountingHead struct {
	header  *header.ExtendedHeader
	counter int
}

func (e *exchangeCountingHead) Head(context.Context) (*header.ExtendedHeader, error) {
	e.counter++
	time.Sleep(time.Millisecond * 100) // simulate requesting something
	return e.header, nil
}

func (e *exchangeCountingHead) GetByHeight(context.Context, uint64) (*header.ExtendedHeader, error) {
	panic("implement me")
}

func (e *exchangeCountingHead) GetRangeByHeight(context.Context, uint64, uint64) ([]*header.ExtendedHeader, error) {
	panic("implement me")
}
