package store

import (
	"context"
	"testing"
	"time"

	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/celestia-light/header"
	"github.com/celestiaorg/celestia-light/header/headertest"
)

func TestStore(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)

	ds := sync.MutexWrap(datastore.NewMapDatastore())
	store, err := NewStoreWithHead(ctx, ds, suite.Head())
	require.NoError(t, err)

	err = store.Start(ctx)
	require.NoError(t, err)

	head, err := store.Head(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, suite.Head().Hash(), head.Hash())

	in := suite.GenExtendedHeaders(10)
	err = store.Append(ctx, in...)
	require.NoError(t, err)

	out, err := store.GetRangeByHeight(ctx, 2, 10)
	require.NoError(t, err)
	for i, h := range out {
		assert.Equal(t, in[i].Hash(), h.Hash())
	}

	head, err = store.Head(ctx)
	require.NoError(t, err)
	assert.Equal(t, suite.Head().Hash(), head.Hash())

	ok, err := store.Has(ctx, in[0].Hash())
	require.NoError(t, err)
	assert.True(t, ok)

	go func() {
		err := store.Append(ctx, suite.GenExtendedHeaders(1)...)
		require.NoError(t, err)
	}()

	// waits until header is written
	h, err := store.GetByHeight(ctx, 12)
	require.NoError(t, err)
	assert.NotNil(t, h)

	err = store.Stop(ctx)
	require.NoError(t, err)

	// check that the store can be successfully started after previous stop
	// with all data being flushed.
	store, err = NewStore(ds)
	require.NoError(t, err)

	err = store.Start(ctx)
	require.NoError(t, err)

	head, err = store.Head(ctx)
	require.NoError(t, err)
	assert.Equal(t, suite.Head().Hash(), head.Hash())

	out, err = store.GetRangeByHeight(ctx, 1, 12)
	require.NoError(t, err)
	assert.Len(t, out, 12)

	err = store.Stop(ctx)
	require.NoError(t, err)
}

func TestStore_Append_BadHeader(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)
	store := NewTestStore(ctx, t, suite.Head())

	in := suite.GenExtendedHeaders(5)
	// skip a height to break adjacency
	err := store.Append(ctx, in[1:]...)
	var nonAdj *header.ErrNonAdjacent
	assert.ErrorAs(t, err, &nonAdj)

	// appending the full range works
	err = store.Append(ctx, in...)
	require.NoError(t, err)
}

func TestStore_GetRangeByHeight_Missing(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*2)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)
	store := NewTestStore(ctx, t, suite.Head())

	err := store.Append(ctx, suite.GenExtendedHeaders(5)...)
	require.NoError(t, err)

	// the requested range goes past the current head
	shortCtx, shortCancel := context.WithTimeout(ctx, time.Millisecond*100)
	defer shortCancel()
	_, err = store.GetRangeByHeight(shortCtx, 2, 50)
	assert.Error(t, err)
}

func TestStore_DeleteTo(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	suite := headertest.NewTestSuite(t)

	ds := sync.MutexWrap(datastore.NewMapDatastore())
	store, err := NewStoreWithHead(ctx, ds, suite.Head())
	require.NoError(t, err)
	require.NoError(t, store.Start(ctx))

	err = store.Append(ctx, suite.GenExtendedHeaders(20)...)
	require.NoError(t, err)

	// stop flushes all the pending writes on disk
	require.NoError(t, store.Stop(ctx))

	store, err = NewStore(ds)
	require.NoError(t, err)
	require.NoError(t, store.Start(ctx))

	tail, err := store.Tail(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, tail.Height)

	err = store.DeleteTo(ctx, 10)
	require.NoError(t, err)

	tail, err = store.Tail(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 10, tail.Height)

	// deleted headers are gone
	_, err = store.GetByHeight(ctx, 5)
	assert.ErrorIs(t, err, header.ErrNotFound)

	// the rest of the chain is intact
	h, err := store.GetByHeight(ctx, 15)
	require.NoError(t, err)
	assert.EqualValues(t, 15, h.Height)

	// deleting past the head must be refused
	err = store.DeleteTo(ctx, 100)
	assert.Error(t, err)

	require.NoError(t, store.Stop(ctx))
}
