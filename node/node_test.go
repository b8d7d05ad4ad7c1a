package node

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/libp2p/go-libp2p/core/peer"
	mocknet "github.com/libp2p/go-libp2p/p2p/net/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/celestia-light/events"
	"github.com/celestiaorg/celestia-light/fraud"
	"github.com/celestiaorg/celestia-light/share"
)

type fakeService struct {
	stops atomic.Int32
}

func (f *fakeService) Stop(context.Context) error {
	f.stops.Add(1)
	return nil
}

// TestWatchFraudHaltsNode ensures a reported bad encoding proof stops syncing
// and sampling and announces the compromise exactly once.
func TestWatchFraudHaltsNode(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	bus := events.NewBus()
	sub := bus.Subscribe()
	defer sub.Cancel()

	syncStub, dasStub := &fakeService{}, &fakeService{}
	nd := &Node{
		bus:       bus,
		fraud:     fraud.NewService(),
		haltables: []service{dasStub, syncStub},
		fraudDn:   make(chan struct{}),
	}
	go nd.watchFraud(ctx)

	proof := &fraud.BadEncodingProof{
		BlockHeight: 7,
		Coords:      share.SampleCoords{Row: 1, Col: 2},
	}
	require.NoError(t, nd.fraud.Report(ctx, proof))

	select {
	case <-nd.fraudDn:
	case <-ctx.Done():
		t.Fatal("fraud watcher did not react to the proof")
	}

	select {
	case e := <-sub.Events():
		require.Equal(t, events.TypeNetworkCompromised, e.Type())
		assert.EqualValues(t, 7, e.(events.NetworkCompromised).Height)
	case <-ctx.Done():
		t.Fatal("no NetworkCompromised event")
	}

	assert.EqualValues(t, 1, syncStub.stops.Load())
	assert.EqualValues(t, 1, dasStub.stops.Load())

	// a second report must not produce another halt or event
	second := &fraud.BadEncodingProof{BlockHeight: 9}
	require.NoError(t, nd.fraud.Report(ctx, second))
	nd.halt(second.Height())

	select {
	case e := <-sub.Events():
		t.Fatalf("unexpected event after second report: %v", e.Type())
	case <-time.After(100 * time.Millisecond):
	}
	assert.EqualValues(t, 1, syncStub.stops.Load())
	assert.EqualValues(t, 1, dasStub.stops.Load())
}

func TestConnectedPeersTrustedFirst(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	net, err := mocknet.FullMeshLinked(3)
	require.NoError(t, err)
	t.Cleanup(func() { net.Close() })

	h := net.Hosts()[0]
	trusted := net.Hosts()[1].ID()

	bus := events.NewBus()
	sub := bus.Subscribe()
	defer sub.Cancel()

	cp := newConnectedPeers(h, []peer.AddrInfo{{ID: trusted}}, bus)

	_, err = net.ConnectPeers(h.ID(), net.Hosts()[2].ID())
	require.NoError(t, err)
	_, err = net.ConnectPeers(h.ID(), trusted)
	require.NoError(t, err)

	// connectivity notifications are delivered asynchronously
	require.Eventually(t, func() bool {
		peers, err := cp.Peers(ctx)
		require.NoError(t, err)
		return len(peers) == 2
	}, time.Second*2, time.Millisecond*10)

	peers, err := cp.Peers(ctx)
	require.NoError(t, err)
	assert.Equal(t, trusted, peers[0])

	var trustedConns int
	for i := 0; i < 2; i++ {
		select {
		case e := <-sub.Events():
			require.Equal(t, events.TypePeerConnected, e.Type())
			if e.(events.PeerConnected).Trusted {
				trustedConns++
			}
		case <-ctx.Done():
			t.Fatal("missing PeerConnected event")
		}
	}
	assert.Equal(t, 1, trustedConns)
}
