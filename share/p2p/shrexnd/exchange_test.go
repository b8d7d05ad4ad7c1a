package shrexnd_test

import (
	"context"
	"testing"
	"time"

	"github.com/libp2p/go-libp2p/core/peer"
	mocknet "github.com/libp2p/go-libp2p/p2p/net/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/celestia-light/share"
	"github.com/celestiaorg/celestia-light/share/p2p/shrexnd"
	"github.com/celestiaorg/celestia-light/share/sharetest"
)

const networkID = "private"

func TestExchange_GetSample(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	square := sharetest.NewSquare(t, 2)
	client, srvHost := createClientServer(ctx, t, square)

	// original quadrant
	sample, err := client.GetSample(ctx, square.Root(), 0, 0, srvHost)
	require.NoError(t, err)
	assert.NotNil(t, sample.Proof)

	// parity quadrant
	sample, err = client.GetSample(ctx, square.Root(), 3, 1, srvHost)
	require.NoError(t, err)
	assert.True(t, share.GetNamespace(sample.Share).Equals(share.ParitySharesNamespace))
}

func TestExchange_GetSampleNotFound(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	square := sharetest.NewSquare(t, 2)
	client, srvHost := createClientServer(ctx, t, square)

	unknown := sharetest.RandRoot(t, 4)
	_, err := client.GetSample(ctx, unknown, 0, 0, srvHost)
	assert.ErrorIs(t, err, shrexnd.ErrNotFound)
}

func TestExchange_GetSampleInvalidProof(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	square := sharetest.NewSquare(t, 2)
	liar := &sharetest.LyingAccessor{Inner: sharetest.NewSquare(t, 2)}

	net, err := mocknet.FullMeshConnected(2)
	require.NoError(t, err)

	srv, err := shrexnd.NewServer(net.Hosts()[1], networkID, liar)
	require.NoError(t, err)
	require.NoError(t, srv.Start(ctx))
	t.Cleanup(func() {
		require.NoError(t, srv.Stop(ctx))
	})

	client, err := shrexnd.NewClient(net.Hosts()[0], networkID)
	require.NoError(t, err)

	_, err = client.GetSample(ctx, square.Root(), 0, 0, net.Hosts()[1].ID())
	assert.ErrorIs(t, err, share.ErrInvalidProof)
}

func TestExchange_GetSampleOutOfSquare(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	square := sharetest.NewSquare(t, 2)
	client, srvHost := createClientServer(ctx, t, square)

	_, err := client.GetSample(ctx, square.Root(), 5, 0, srvHost)
	assert.Error(t, err)
}

func createClientServer(
	ctx context.Context,
	t *testing.T,
	accessor shrexnd.Accessor,
) (*shrexnd.Client, peer.ID) {
	net, err := mocknet.FullMeshConnected(2)
	require.NoError(t, err)

	srv, err := shrexnd.NewServer(net.Hosts()[1], networkID, accessor)
	require.NoError(t, err)
	require.NoError(t, srv.Start(ctx))
	t.Cleanup(func() {
		require.NoError(t, srv.Stop(ctx))
	})

	client, err := shrexnd.NewClient(net.Hosts()[0], networkID)
	require.NoError(t, err)

	return client, net.Hosts()[1].ID()
}
