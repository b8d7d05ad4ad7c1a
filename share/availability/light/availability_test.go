package light_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ipfs/go-datastore"
	ds_sync "github.com/ipfs/go-datastore/sync"
	"github.com/libp2p/go-libp2p/core/peer"
	mocknet "github.com/libp2p/go-libp2p/p2p/net/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/celestia-light/events"
	"github.com/celestiaorg/celestia-light/share"
	"github.com/celestiaorg/celestia-light/share/availability/light"
	"github.com/celestiaorg/celestia-light/share/p2p/shrexnd"
	"github.com/celestiaorg/celestia-light/share/sharetest"
)

const networkID = "private"

type staticPeers []peer.ID

func (p staticPeers) Peers(context.Context) ([]peer.ID, error) {
	return p, nil
}

func TestSharesAvailable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	t.Cleanup(cancel)

	square := sharetest.NewSquare(t, 2)
	avail := newAvailability(ctx, t, square, square)

	err := avail.SharesAvailable(ctx, square.Root(), 2)
	require.NoError(t, err)

	// sampling the same root again is a no-op backed by the stored result
	err = avail.SharesAvailable(ctx, square.Root(), 2)
	require.NoError(t, err)
}

func TestSharesAvailable_MinimalSquare(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	// no servers around, a minimal square must not issue a single request
	avail := newAvailability(ctx, t)

	bus := events.NewBus()
	sub := bus.Subscribe()
	defer sub.Cancel()
	avail.WithEvents(bus)

	err := avail.SharesAvailable(ctx, share.EmptyRoot(), 1)
	assert.NoError(t, err)

	// the vacuous success still reports a finished sampling round
	select {
	case e := <-sub.Events():
		finished, ok := e.(events.SamplingFinished)
		require.True(t, ok, "unexpected event %T", e)
		assert.EqualValues(t, 1, finished.Height)
		assert.True(t, finished.Accepted)
	case <-ctx.Done():
		t.Fatal("no sampling event published")
	}
}

func TestSharesAvailable_NotAvailable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	t.Cleanup(cancel)

	// both peers store some other square
	other := sharetest.NewSquare(t, 2)
	avail := newAvailability(ctx, t, other, other)

	requested := sharetest.NewSquare(t, 2)
	shortCtx, shortCancel := context.WithTimeout(ctx, time.Second*3)
	defer shortCancel()
	err := avail.SharesAvailable(shortCtx, requested.Root(), 2)
	assert.ErrorIs(t, err, share.ErrNotAvailable)
}

func TestSharesAvailable_Byzantine(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	t.Cleanup(cancel)

	// two independent peers corroborating root-mismatching proofs is the
	// provable data withholding case
	liar1 := &sharetest.LyingAccessor{Inner: sharetest.NewSquare(t, 2)}
	liar2 := &sharetest.LyingAccessor{Inner: sharetest.NewSquare(t, 2)}
	avail := newAvailability(ctx, t, liar1, liar2)

	square := sharetest.NewSquare(t, 2)
	err := avail.SharesAvailable(ctx, square.Root(), 2)

	var byzantine *share.ErrByzantine
	require.ErrorAs(t, err, &byzantine)
	assert.EqualValues(t, 2, byzantine.Height)
}

func TestSharesAvailable_SingleInvalidProofIsNotByzantine(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	t.Cleanup(cancel)

	// one lying peer without a corroborating second opinion must not be
	// escalated to the byzantine case
	liar := &sharetest.LyingAccessor{Inner: sharetest.NewSquare(t, 2)}
	other := sharetest.NewSquare(t, 2)
	avail := newAvailability(ctx, t, liar, other)

	requested := sharetest.NewSquare(t, 2)
	shortCtx, shortCancel := context.WithTimeout(ctx, time.Second*3)
	defer shortCancel()
	err := avail.SharesAvailable(shortCtx, requested.Root(), 2)

	assert.ErrorIs(t, err, share.ErrNotAvailable)
	var byzantine *share.ErrByzantine
	assert.False(t, errors.As(err, &byzantine))
}

// newAvailability builds a light availability over a mocknet with one server
// host per given accessor.
func newAvailability(
	ctx context.Context,
	t *testing.T,
	accessors ...shrexnd.Accessor,
) *light.ShareAvailability {
	net, err := mocknet.FullMeshConnected(len(accessors) + 1)
	require.NoError(t, err)

	peers := make(staticPeers, 0, len(accessors))
	for i, accessor := range accessors {
		srv, err := shrexnd.NewServer(net.Hosts()[i+1], networkID, accessor)
		require.NoError(t, err)
		require.NoError(t, srv.Start(ctx))
		t.Cleanup(func() {
			require.NoError(t, srv.Stop(ctx))
		})
		peers = append(peers, net.Hosts()[i+1].ID())
	}

	client, err := shrexnd.NewClient(net.Hosts()[0], networkID)
	require.NoError(t, err)

	avail, err := light.NewShareAvailability(
		client,
		peers,
		ds_sync.MutexWrap(datastore.NewMapDatastore()),
		light.WithSampleAmount(4),
	)
	require.NoError(t, err)
	require.NoError(t, avail.Start(ctx))
	return avail
}
