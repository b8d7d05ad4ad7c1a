package p2p

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/sync"
	libhost "github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/p2p/net/conngater"
	mocknet "github.com/libp2p/go-libp2p/p2p/net/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/go-libp2p-messenger/serde"

	"github.com/celestiaorg/celestia-light/header"
	"github.com/celestiaorg/celestia-light/header/headertest"
	p2p_pb "github.com/celestiaorg/celestia-light/header/p2p/pb"
)

const networkID = "private"

func TestExchange_RequestHead(t *testing.T) {
	hosts := createMocknet(t, 2)
	exchg, store := createP2PExAndServer(t, hosts[0], hosts[1])
	// perform header request
	h, err := exchg.Head(context.Background())
	require.NoError(t, err)

	assert.Equal(t, store.Headers[store.HeadHeight].Height, h.Height)
	assert.Equal(t, store.Headers[store.HeadHeight].Hash(), h.Hash())
}

// TestExchange_RequestHeadCanceledContext ensures an early return on context
// cancellation does not leave the per-peer request routines blocked on their
// sends.
func TestExchange_RequestHeadCanceledContext(t *testing.T) {
	hosts := createMocknet(t, 2)
	exchg, _ := createP2PExAndServer(t, hosts[0], hosts[1])

	before := runtime.NumGoroutine()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := exchg.Head(ctx)
	require.Error(t, err)

	require.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before+1
	}, time.Second*3, time.Millisecond*50)
}

func TestExchange_RequestHeader(t *testing.T) {
	hosts := createMocknet(t, 2)
	exchg, store := createP2PExAndServer(t, hosts[0], hosts[1])
	// perform expected request
	h, err := exchg.GetByHeight(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, store.Headers[5].Height, h.Height)
	assert.Equal(t, store.Headers[5].Hash(), h.Hash())
}

func TestExchange_RequestHeaders(t *testing.T) {
	hosts := createMocknet(t, 2)
	exchg, store := createP2PExAndServer(t, hosts[0], hosts[1])
	// perform expected request
	gotHeaders, err := exchg.GetRangeByHeight(context.Background(), 1, 5)
	require.NoError(t, err)
	require.Len(t, gotHeaders, 5)
	for _, got := range gotHeaders {
		assert.Equal(t, store.Headers[got.Height].Height, got.Height)
		assert.Equal(t, store.Headers[got.Height].Hash(), got.Hash())
	}
}

func TestExchange_RequestVerifiedHeaders(t *testing.T) {
	hosts := createMocknet(t, 2)
	exchg, store := createP2PExAndServer(t, hosts[0], hosts[1])
	// perform expected request
	h := store.Headers[1]
	headers, err := exchg.GetVerifiedRange(context.Background(), h, 3)
	require.NoError(t, err)
	require.Len(t, headers, 3)
}

func TestExchange_RequestVerifiedHeadersFails(t *testing.T) {
	hosts := createMocknet(t, 2)
	exchg, store := createP2PExAndServer(t, hosts[0], hosts[1])
	// break adjacency on the serving side
	store.Headers[2] = store.Headers[3]
	// perform expected request
	h := store.Headers[1]
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*500)
	t.Cleanup(cancel)
	_, err := exchg.GetVerifiedRange(ctx, h, 3)
	assert.Error(t, err)

	// ensure that the peer was added to the blacklist
	peers := exchg.peerTracker.connGater.ListBlockedPeers()
	require.Len(t, peers, 1)
	require.True(t, hosts[1].ID() == peers[0])
}

// TestExchange_RequestHeadersLimitExceeded tests that the Exchange instance
// will return header.ErrHeadersLimitExceeded if the requested range is bigger
// than MaxRequestSize.
func TestExchange_RequestHeadersLimitExceeded(t *testing.T) {
	hosts := createMocknet(t, 2)
	exchg, _ := createP2PExAndServer(t, hosts[0], hosts[1])
	_, err := exchg.GetRangeByHeight(context.Background(), 1, 600)
	require.Error(t, err)
	require.ErrorIs(t, err, header.ErrHeadersLimitExceeded)
}

// TestExchange_RequestHeadersFromAnotherPeer tests that the Exchange instance
// will request the range from another peer after receiving header.ErrNotFound.
func TestExchange_RequestHeadersFromAnotherPeer(t *testing.T) {
	hosts := createMocknet(t, 3)
	// create client + server that does not have the needed headers
	exchg, _ := createP2PExAndServer(t, hosts[0], hosts[1])
	// create one more server with more headers in the store
	serverSideEx, err := NewExchangeServer(
		hosts[2], headertest.NewStore(t, headertest.NewTestSuite(t), 10), networkID,
	)
	require.NoError(t, err)
	require.NoError(t, serverSideEx.Start(context.Background()))
	t.Cleanup(func() {
		serverSideEx.Stop(context.Background()) //nolint:errcheck
	})
	exchg.peerTracker.Lock()
	exchg.peerTracker.connectedPeers[hosts[2].ID()] = &peerStat{peerID: hosts[2].ID(), peerScore: 20}
	exchg.peerTracker.Unlock()

	headers, err := exchg.GetRangeByHeight(context.Background(), 5, 3)
	require.NoError(t, err)
	require.Len(t, headers, 3)
	// ensure that peerScore for the second peer was changed
	newPeerScore := exchg.peerTracker.connectedPeers[hosts[2].ID()].score()
	require.NotEqual(t, float32(20), newPeerScore)
}

// TestExchange_RequestByHash tests that the Exchange instance can
// respond to a HeaderRequest for a hash instead of a height.
func TestExchange_RequestByHash(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	net, err := mocknet.FullMeshConnected(2)
	require.NoError(t, err)
	// get host and peer
	host, peer := net.Hosts()[0], net.Hosts()[1]
	// create and start the ExchangeServer
	store := headertest.NewStore(t, headertest.NewTestSuite(t), 5)
	serv, err := NewExchangeServer(host, store, networkID)
	require.NoError(t, err)
	err = serv.Start(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		serv.Stop(context.Background()) //nolint:errcheck
	})

	// start a new stream via Peer to see if Host can handle inbound requests
	stream, err := peer.NewStream(context.Background(), libhost.InfoFromHost(host).ID, protocolID(networkID))
	require.NoError(t, err)
	// create request for a header at a random height
	reqHeight := store.HeadHeight - 2
	req := &p2p_pb.HeaderRequest{
		Data:   &p2p_pb.HeaderRequest_Hash{Hash: store.Headers[reqHeight].Hash()},
		Amount: 1,
	}
	// send request
	_, err = serde.Write(stream, req)
	require.NoError(t, err)
	// read resp
	resp := new(p2p_pb.HeaderResponse)
	_, err = serde.Read(stream, resp)
	require.NoError(t, err)
	require.Equal(t, p2p_pb.StatusCode_OK, resp.StatusCode)
	// compare
	eh, err := header.UnmarshalExtendedHeader(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, store.Headers[reqHeight].Height, eh.Height)
	assert.Equal(t, store.Headers[reqHeight].Hash(), eh.Hash())
}

// TestExchange_RequestByHashFails tests that the server responds with
// a StatusCode_NOT_FOUND if it does not have the requested header.
func TestExchange_RequestByHashFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	net, err := mocknet.FullMeshConnected(2)
	require.NoError(t, err)
	// get host and peer
	host, peer := net.Hosts()[0], net.Hosts()[1]
	serv, err := NewExchangeServer(host, headertest.NewStore(t, headertest.NewTestSuite(t), 1), networkID)
	require.NoError(t, err)
	err = serv.Start(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		serv.Stop(context.Background()) //nolint:errcheck
	})

	stream, err := peer.NewStream(context.Background(), libhost.InfoFromHost(host).ID, protocolID(networkID))
	require.NoError(t, err)
	req := &p2p_pb.HeaderRequest{
		Data:   &p2p_pb.HeaderRequest_Hash{Hash: []byte("dummy_hash")},
		Amount: 1,
	}
	// send request
	_, err = serde.Write(stream, req)
	require.NoError(t, err)
	// read resp
	resp := new(p2p_pb.HeaderResponse)
	_, err = serde.Read(stream, resp)
	require.NoError(t, err)
	require.Equal(t, p2p_pb.StatusCode_NOT_FOUND, resp.StatusCode)
}

func Test_bestHead(t *testing.T) {
	params := DefaultClientParameters()
	gen := func() []*header.ExtendedHeader {
		suite := headertest.NewTestSuite(t)
		res := make([]*header.ExtendedHeader, 0)
		for i := 0; i < 3; i++ {
			res = append(res, suite.NextHeader())
		}
		return res
	}
	testCases := []struct {
		precondition   func() []*header.ExtendedHeader
		expectedHeight uint64
	}{
		// all heads single, highest height wins
		{
			precondition:   gen,
			expectedHeight: 4,
		},
		// the only head that hit MinResponses wins over higher singles
		{
			precondition: func() []*header.ExtendedHeader {
				res := gen()
				res = append(res, res[0])
				return res
			},
			expectedHeight: 2,
		},
		// among heads that hit MinResponses the highest wins
		{
			precondition: func() []*header.ExtendedHeader {
				res := gen()
				res = append(res, res[0])
				res = append(res, res[0])
				res = append(res, res[1])
				return res
			},
			expectedHeight: 3,
		},
	}
	for _, tt := range testCases {
		res := tt.precondition()
		h, err := bestHead(res, params.MinResponses)
		require.NoError(t, err)
		require.Equal(t, tt.expectedHeight, h.Height)
	}
}

func Test_prepareRequests(t *testing.T) {
	requests := prepareRequests(1, 10, 10)
	require.Len(t, requests, 1)
	assert.Equal(t, uint64(1), requests[0].GetOrigin())
	assert.Equal(t, uint64(10), requests[0].Amount)

	requests = prepareRequests(1, 100, 32)
	require.Len(t, requests, 4)
	var total uint64
	next := uint64(1)
	for _, req := range requests {
		assert.Equal(t, next, req.GetOrigin())
		next += req.Amount
		total += req.Amount
	}
	assert.Equal(t, uint64(100), total)
}

func createMocknet(t *testing.T, amount int) []libhost.Host {
	net, err := mocknet.FullMeshConnected(amount)
	require.NoError(t, err)
	// get host and peer
	return net.Hosts()
}

// createP2PExAndServer creates an Exchange with 5 headers already in its
// server-side store.
func createP2PExAndServer(t *testing.T, host, tpeer libhost.Host) (*Exchange, *headertest.Store) {
	store := headertest.NewStore(t, headertest.NewTestSuite(t), 5)
	serverSideEx, err := NewExchangeServer(tpeer, store, networkID)
	require.NoError(t, err)
	err = serverSideEx.Start(context.Background())
	require.NoError(t, err)
	connGater, err := conngater.NewBasicConnectionGater(sync.MutexWrap(datastore.NewMapDatastore()))
	require.NoError(t, err)
	ex, err := NewExchange(host, []peer.ID{tpeer.ID()}, networkID, connGater)
	require.NoError(t, err)
	require.NoError(t, ex.Start(context.Background()))
	time.Sleep(time.Millisecond * 100) // give peerTracker time to add the trusted peer
	ex.peerTracker.Lock()
	ex.peerTracker.connectedPeers[tpeer.ID()] = &peerStat{peerID: tpeer.ID(), peerScore: 100.0}
	ex.peerTracker.Unlock()
	t.Cleanup(func() {
		serverSideEx.Stop(context.Background()) //nolint:errcheck
		ex.Stop(context.Background())           //nolint:errcheck
	})
	return ex, store
}
