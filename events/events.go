// Package events exposes the node's lifecycle as a closed set of typed
// events delivered through a bounded, non-blocking Bus.
package events

import (
	"fmt"
	"time"

	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/celestiaorg/celestia-light/share"
)

// Type names a kind of node event.
type Type string

const (
	TypeConnectingToBootnodes      Type = "ConnectingToBootnodes"
	TypePeerConnected              Type = "PeerConnected"
	TypePeerDisconnected           Type = "PeerDisconnected"
	TypeSamplingStarted            Type = "SamplingStarted"
	TypeShareSamplingResult        Type = "ShareSamplingResult"
	TypeSamplingFinished           Type = "SamplingFinished"
	TypeFatalDaserError            Type = "FatalDaserError"
	TypeAddedHeaderFromHeaderSub   Type = "AddedHeaderFromHeaderSub"
	TypeFetchingHeadHeaderStarted  Type = "FetchingHeadHeaderStarted"
	TypeFetchingHeadHeaderFinished Type = "FetchingHeadHeaderFinished"
	TypeFetchingHeadersStarted     Type = "FetchingHeadersStarted"
	TypeFetchingHeadersFinished    Type = "FetchingHeadersFinished"
	TypeFetchingHeadersFailed      Type = "FetchingHeadersFailed"
	TypeFatalSyncerError           Type = "FatalSyncerError"
	TypePrunedHeaders              Type = "PrunedHeaders"
	TypeFatalPrunerError           Type = "FatalPrunerError"
	TypeNetworkCompromised         Type = "NetworkCompromised"
	TypeNodeStopped                Type = "NodeStopped"
)

// Event is implemented by every node event.
type Event interface {
	// Type returns the stable name of the event.
	Type() Type
}

// ConnectingToBootnodes fires when the node starts dialing its bootnodes.
type ConnectingToBootnodes struct{}

func (ConnectingToBootnodes) Type() Type { return TypeConnectingToBootnodes }

// PeerConnected fires when a peer connects.
type PeerConnected struct {
	ID peer.ID
	// Trusted is set when the peer is in the configured trusted list.
	Trusted bool
}

func (PeerConnected) Type() Type { return TypePeerConnected }

// PeerDisconnected fires when a peer disconnects.
type PeerDisconnected struct {
	ID      peer.ID
	Trusted bool
}

func (PeerDisconnected) Type() Type { return TypePeerDisconnected }

// SamplingStarted fires when sampling of a height begins.
type SamplingStarted struct {
	Height      uint64
	SquareWidth int
	// Shares are the coordinates that will be sampled.
	Shares []share.SampleCoords
}

func (SamplingStarted) Type() Type { return TypeSamplingStarted }

// ShareSamplingResult fires for every sampled share.
type ShareSamplingResult struct {
	Height      uint64
	SquareWidth int
	Row         int
	Col         int
	Accepted    bool
}

func (ShareSamplingResult) Type() Type { return TypeShareSamplingResult }

// SamplingFinished fires when sampling of a height is finished.
type SamplingFinished struct {
	Height   uint64
	Accepted bool
	Took     time.Duration
}

func (SamplingFinished) Type() Type { return TypeSamplingFinished }

// FatalDaserError fires when the sampling process dies.
type FatalDaserError struct {
	Error string
}

func (FatalDaserError) Type() Type { return TypeFatalDaserError }

// AddedHeaderFromHeaderSub fires when a gossiped header was accepted.
type AddedHeaderFromHeaderSub struct {
	Height uint64
}

func (AddedHeaderFromHeaderSub) Type() Type { return TypeAddedHeaderFromHeaderSub }

// FetchingHeadHeaderStarted fires when a network head request starts.
type FetchingHeadHeaderStarted struct{}

func (FetchingHeadHeaderStarted) Type() Type { return TypeFetchingHeadHeaderStarted }

// FetchingHeadHeaderFinished fires when a network head request finishes.
type FetchingHeadHeaderFinished struct {
	Height uint64
	Took   time.Duration
}

func (FetchingHeadHeaderFinished) Type() Type { return TypeFetchingHeadHeaderFinished }

// FetchingHeadersStarted fires when a header range request starts.
// The range is inclusive on both ends.
type FetchingHeadersStarted struct {
	FromHeight uint64
	ToHeight   uint64
}

func (FetchingHeadersStarted) Type() Type { return TypeFetchingHeadersStarted }

// FetchingHeadersFinished fires when a header range request finishes.
type FetchingHeadersFinished struct {
	FromHeight uint64
	ToHeight   uint64
	Took       time.Duration
}

func (FetchingHeadersFinished) Type() Type { return TypeFetchingHeadersFinished }

// FetchingHeadersFailed fires when a header range request fails.
type FetchingHeadersFailed struct {
	FromHeight uint64
	ToHeight   uint64
	Error      string
	Took       time.Duration
}

func (FetchingHeadersFailed) Type() Type { return TypeFetchingHeadersFailed }

// FatalSyncerError fires when the syncing process dies.
type FatalSyncerError struct {
	Error string
}

func (FatalSyncerError) Type() Type { return TypeFatalSyncerError }

// PrunedHeaders fires after a pruning sweep removed headers up to and
// including ToHeight.
type PrunedHeaders struct {
	ToHeight uint64
}

func (PrunedHeaders) Type() Type { return TypePrunedHeaders }

// FatalPrunerError fires when the pruning process dies.
type FatalPrunerError struct {
	Error string
}

func (FatalPrunerError) Type() Type { return TypeFatalPrunerError }

// NetworkCompromised fires when a valid bad encoding proof was observed.
// Syncing and data sampling stop immediately after it.
type NetworkCompromised struct {
	Height uint64
}

func (NetworkCompromised) Type() Type { return TypeNetworkCompromised }

// NodeStopped fires when the node finished shutting down.
type NodeStopped struct{}

func (NodeStopped) Type() Type { return TypeNodeStopped }

func (e PeerConnected) String() string {
	return fmt.Sprintf("peer %s connected, trusted: %t", e.ID, e.Trusted)
}

func (e PeerDisconnected) String() string {
	return fmt.Sprintf("peer %s disconnected, trusted: %t", e.ID, e.Trusted)
}

func (e SamplingFinished) String() string {
	return fmt.Sprintf("sampling of %d finished, accepted: %t, took: %s", e.Height, e.Accepted, e.Took)
}
