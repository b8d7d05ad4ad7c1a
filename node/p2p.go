package node

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/ipfs/go-datastore"
	"github.com/libp2p/go-libp2p"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/p2p/host/peerstore/pstoremem"
	"github.com/libp2p/go-libp2p/p2p/net/conngater"
	"github.com/libp2p/go-libp2p/p2p/net/connmgr"

	"github.com/celestiaorg/celestia-light/libs/keystore"
)

const p2pKeyName keystore.KeyName = "p2p-key"

// identity provides the networking private key of the node, generating and
// persisting a fresh one on the first run.
func identity(ks keystore.Keystore) (crypto.PrivKey, error) {
	ksPriv, err := ks.Get(p2pKeyName)
	switch {
	case err == nil:
		return crypto.UnmarshalPrivateKey(ksPriv.Body)
	case errors.Is(err, keystore.ErrNotFound):
	default:
		return nil, err
	}

	priv, _, err := crypto.GenerateEd25519Key(rand.Reader)
	if err != nil {
		return nil, err
	}
	bin, err := crypto.MarshalPrivateKey(priv)
	if err != nil {
		return nil, err
	}
	if err := ks.Put(p2pKeyName, keystore.PrivKey{Body: bin}); err != nil {
		return nil, err
	}

	return priv, nil
}

// newHost assembles the libp2p host the node's protocols run on.
func newHost(
	cfg P2PConfig,
	ks keystore.Keystore,
	ds datastore.Batching,
) (host.Host, *conngater.BasicConnectionGater, error) {
	priv, err := identity(ks)
	if err != nil {
		return nil, nil, fmt.Errorf("node: loading p2p identity: %w", err)
	}

	gater, err := conngater.NewBasicConnectionGater(ds)
	if err != nil {
		return nil, nil, err
	}

	cm, err := connmgr.NewConnManager(50, 100, connmgr.WithGracePeriod(time.Minute))
	if err != nil {
		return nil, nil, err
	}

	pstore, err := pstoremem.NewPeerstore()
	if err != nil {
		return nil, nil, err
	}

	h, err := libp2p.New(
		libp2p.Identity(priv),
		libp2p.ListenAddrStrings(cfg.ListenAddresses...),
		libp2p.Peerstore(pstore),
		libp2p.ConnectionManager(cm),
		libp2p.ConnectionGater(gater),
		libp2p.NATPortMap(),
		libp2p.UserAgent("celestia-light"),
	)
	if err != nil {
		return nil, nil, err
	}

	return h, gater, nil
}

// newGossipSub assembles the gossipsub router the header-sub topic runs on.
func newGossipSub(
	ctx context.Context,
	h host.Host,
	direct []peer.AddrInfo,
	peerExchange bool,
) (*pubsub.PubSub, error) {
	return pubsub.NewGossipSub(ctx, h,
		pubsub.WithPeerExchange(peerExchange),
		pubsub.WithDirectPeers(direct),
		// headers are self-certifying, signatures carry no extra trust
		pubsub.WithMessageSignaturePolicy(pubsub.StrictNoSign),
	)
}
