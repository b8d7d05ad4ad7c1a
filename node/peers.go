package node

import (
	"context"
	"sync"

	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/celestiaorg/celestia-light/events"
)

// connectedPeers tracks the host's connected peers, preferring trusted ones,
// and reports connectivity changes to the event bus. It backs the light
// availability's peer selection.
type connectedPeers struct {
	host    host.Host
	trusted map[peer.ID]struct{}
	events  events.Publisher

	lk    sync.RWMutex
	peers map[peer.ID]struct{}
}

func newConnectedPeers(h host.Host, trusted []peer.AddrInfo, bus events.Publisher) *connectedPeers {
	trustedSet := make(map[peer.ID]struct{}, len(trusted))
	for _, info := range trusted {
		trustedSet[info.ID] = struct{}{}
	}

	cp := &connectedPeers{
		host:    h,
		trusted: trustedSet,
		events:  bus,
		peers:   make(map[peer.ID]struct{}),
	}
	h.Network().Notify(cp)
	return cp
}

// Peers reports currently connected peers, trusted peers first.
func (cp *connectedPeers) Peers(context.Context) ([]peer.ID, error) {
	cp.lk.RLock()
	defer cp.lk.RUnlock()

	out := make([]peer.ID, 0, len(cp.peers))
	for p := range cp.peers {
		if _, ok := cp.trusted[p]; ok {
			out = append(out, p)
		}
	}
	for p := range cp.peers {
		if _, ok := cp.trusted[p]; !ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (cp *connectedPeers) isTrusted(p peer.ID) bool {
	_, ok := cp.trusted[p]
	return ok
}

func (cp *connectedPeers) Connected(_ network.Network, conn network.Conn) {
	p := conn.RemotePeer()

	cp.lk.Lock()
	_, known := cp.peers[p]
	cp.peers[p] = struct{}{}
	cp.lk.Unlock()

	if !known {
		cp.events.Publish(events.PeerConnected{ID: p, Trusted: cp.isTrusted(p)})
	}
}

func (cp *connectedPeers) Disconnected(n network.Network, conn network.Conn) {
	p := conn.RemotePeer()
	if n.Connectedness(p) == network.Connected {
		// other connections to the peer remain
		return
	}

	cp.lk.Lock()
	_, known := cp.peers[p]
	delete(cp.peers, p)
	cp.lk.Unlock()

	if known {
		cp.events.Publish(events.PeerDisconnected{ID: p, Trusted: cp.isTrusted(p)})
	}
}

func (cp *connectedPeers) Listen(network.Network, ma.Multiaddr)      {}
func (cp *connectedPeers) ListenClose(network.Network, ma.Multiaddr) {}
