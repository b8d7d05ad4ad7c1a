// Package node assembles all the node's subsystems into a runnable light
// node and manages their lifecycles.
package node

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	logging "github.com/ipfs/go-log/v2"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/p2p/net/conngater"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/celestiaorg/celestia-light/build"
	"github.com/celestiaorg/celestia-light/das"
	"github.com/celestiaorg/celestia-light/events"
	"github.com/celestiaorg/celestia-light/fraud"
	"github.com/celestiaorg/celestia-light/header"
	headp2p "github.com/celestiaorg/celestia-light/header/p2p"
	headstore "github.com/celestiaorg/celestia-light/header/store"
	headsync "github.com/celestiaorg/celestia-light/header/sync"
	"github.com/celestiaorg/celestia-light/pruner"
	"github.com/celestiaorg/celestia-light/share/availability/light"
	"github.com/celestiaorg/celestia-light/share/p2p/shrexnd"
)

var log = logging.Logger("node")

// service is a subsystem with a stoppable lifecycle.
type service interface {
	Stop(context.Context) error
}

// Node is a data availability light node. It syncs and verifies headers from
// the network and samples shares to subjectively verify data availability.
type Node struct {
	cfg   *Config
	store *Store

	host          host.Host
	connGater     *conngater.BasicConnectionGater
	pubsub        *pubsub.PubSub
	peers         *connectedPeers
	bootstrappers []peer.AddrInfo

	bus *events.Bus

	hstore     *headstore.Store
	subscriber *headp2p.Subscriber
	server     *headp2p.ExchangeServer
	exchange   *headp2p.Exchange
	syncer     *headsync.Syncer
	avail      *light.ShareAvailability
	daser      *das.DASer
	pruner     *pruner.Service
	fraud      *fraud.Service

	// haltables are the services stopped on network compromise
	haltables []service
	haltOnce  sync.Once

	cancel  context.CancelFunc
	fraudDn chan struct{}
}

// New assembles a new Node over the given open Store.
func New(store *Store) (*Node, error) {
	cfg, err := store.Config()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	network, err := build.Network(cfg.P2P.Network).Validate()
	if err != nil {
		return nil, err
	}

	ds, err := store.Datastore()
	if err != nil {
		return nil, err
	}
	ks, err := store.Keystore()
	if err != nil {
		return nil, err
	}

	bus := events.NewBus()

	h, gater, err := newHost(cfg.P2P, ks, ds)
	if err != nil {
		return nil, fmt.Errorf("node: building host: %w", err)
	}

	bootstrappers, err := bootstrappersFor(network, cfg.P2P)
	if err != nil {
		return nil, err
	}
	trusted, err := trustedPeersFor(bootstrappers, cfg.P2P)
	if err != nil {
		return nil, err
	}

	peers := newConnectedPeers(h, trusted, bus)

	ps, err := newGossipSub(context.Background(), h, trusted, cfg.P2P.PeerExchange)
	if err != nil {
		return nil, fmt.Errorf("node: building gossipsub: %w", err)
	}

	hstore, err := headstore.NewStore(ds)
	if err != nil {
		return nil, err
	}

	subscriber := headp2p.NewSubscriber(ps, header.MsgID, network.String())

	server, err := headp2p.NewExchangeServer(h, hstore, network.String())
	if err != nil {
		return nil, err
	}

	trustedIDs := make(peer.IDSlice, 0, len(trusted))
	for _, info := range trusted {
		trustedIDs = append(trustedIDs, info.ID)
	}
	exchange, err := headp2p.NewExchange(h, trustedIDs, network.String(), gater)
	if err != nil {
		return nil, err
	}

	syncer, err := headsync.NewSyncer(exchange, hstore, subscriber,
		headsync.WithBlockTime(cfg.Header.BlockTime),
		headsync.WithTrustingPeriod(cfg.Header.TrustingPeriod),
		headsync.WithMaxRequestSize(cfg.Header.MaxRequestSize),
	)
	if err != nil {
		return nil, err
	}
	syncer.WithEvents(bus)

	shrexClient, err := shrexnd.NewClient(h, network.String())
	if err != nil {
		return nil, err
	}

	avail, err := light.NewShareAvailability(shrexClient, peers, ds,
		light.WithSampleAmount(cfg.DAS.SampleAmount),
	)
	if err != nil {
		return nil, err
	}
	avail.WithEvents(bus)

	fraudServ := fraud.NewService()

	daser, err := das.NewDASer(avail, subscriber, hstore, ds, fraudServ,
		das.WithSamplingRange(cfg.DAS.SamplingRange),
		das.WithConcurrencyLimit(cfg.DAS.ConcurrencyLimit),
		das.WithSampleFrom(cfg.DAS.SampleFrom),
		das.WithSampleTimeout(cfg.DAS.SampleTimeout),
		das.WithEvents(bus),
	)
	if err != nil {
		return nil, err
	}

	nd := &Node{
		cfg:           cfg,
		store:         store,
		host:          h,
		connGater:     gater,
		pubsub:        ps,
		peers:         peers,
		bootstrappers: bootstrappers,
		bus:           bus,
		hstore:        hstore,
		subscriber:    subscriber,
		server:        server,
		exchange:      exchange,
		syncer:        syncer,
		avail:         avail,
		daser:         daser,
		fraud:         fraudServ,
		fraudDn:       make(chan struct{}),
	}
	nd.haltables = []service{daser, syncer}

	if cfg.Pruner.Enabled {
		nd.pruner, err = pruner.NewService(avail, syncer, hstore, ds, bus,
			pruner.WithPruneCycle(cfg.Pruner.PruneCycle),
			pruner.WithRetentionDepth(cfg.Pruner.RetentionDepth),
		)
		if err != nil {
			return nil, err
		}
	}

	return nd, nil
}

// WithMetrics enables OTel metrics collection across the node's subsystems.
// Must be called before Start.
func (n *Node) WithMetrics() error {
	if err := n.daser.WithMetrics(); err != nil {
		return err
	}
	if n.pruner != nil {
		return n.pruner.WithMetrics()
	}
	return nil
}

// EventBus exposes the bus the node's subsystems report their events on.
func (n *Node) EventBus() *events.Bus {
	return n.bus
}

// Host exposes the node's libp2p host.
func (n *Node) Host() host.Host {
	return n.host
}

// HeaderStore exposes the node's local header store.
func (n *Node) HeaderStore() header.Store {
	return n.hstore
}

// Start brings the Node online, starting all its subsystems in dependency
// order.
func (n *Node) Start(ctx context.Context) error {
	log.Infow("starting light node", "network", n.cfg.P2P.Network)

	runCtx, cancel := context.WithCancel(context.Background())
	n.cancel = cancel

	if err := n.hstore.Start(ctx); err != nil {
		return fmt.Errorf("node: starting header store: %w", err)
	}
	if err := n.subscriber.Start(ctx); err != nil {
		return fmt.Errorf("node: starting header subscriber: %w", err)
	}
	if err := n.server.Start(ctx); err != nil {
		return fmt.Errorf("node: starting header server: %w", err)
	}
	if err := n.exchange.Start(ctx); err != nil {
		return fmt.Errorf("node: starting header exchange: %w", err)
	}

	n.connectBootstrappers(ctx)

	if err := n.initStoreHead(ctx); err != nil {
		return fmt.Errorf("node: initializing header store head: %w", err)
	}

	if err := n.avail.Start(ctx); err != nil {
		return fmt.Errorf("node: starting availability: %w", err)
	}
	if err := n.syncer.Start(ctx); err != nil {
		return fmt.Errorf("node: starting syncer: %w", err)
	}
	if err := n.daser.Start(ctx); err != nil {
		return fmt.Errorf("node: starting daser: %w", err)
	}
	if n.pruner != nil {
		if err := n.pruner.Start(ctx); err != nil {
			return fmt.Errorf("node: starting pruner: %w", err)
		}
	}

	go n.watchFraud(runCtx)

	log.Infow("node is up", "peer", n.host.ID())
	return nil
}

// Stop shuts the Node down, stopping all its subsystems in reverse start
// order.
func (n *Node) Stop(ctx context.Context) error {
	n.cancel()

	var err error
	if n.pruner != nil {
		err = multierr.Append(err, n.pruner.Stop(ctx))
	}
	err = multierr.Append(err, n.daser.Stop(ctx))
	err = multierr.Append(err, n.syncer.Stop(ctx))
	err = multierr.Append(err, n.avail.Stop(ctx))
	err = multierr.Append(err, n.exchange.Stop(ctx))
	err = multierr.Append(err, n.server.Stop(ctx))
	err = multierr.Append(err, n.subscriber.Stop(ctx))
	err = multierr.Append(err, n.hstore.Stop(ctx))
	err = multierr.Append(err, n.host.Close())

	select {
	case <-n.fraudDn:
	case <-ctx.Done():
		err = multierr.Append(err, ctx.Err())
	}

	n.bus.Publish(events.NodeStopped{})
	log.Info("node stopped")
	return err
}

// connectBootstrappers dials the network's bootstrap peers. Individual
// failures are tolerated, peer discovery fills the gaps later.
func (n *Node) connectBootstrappers(ctx context.Context) {
	if len(n.bootstrappers) == 0 {
		return
	}
	n.bus.Publish(events.ConnectingToBootnodes{})

	var g errgroup.Group
	g.SetLimit(4)
	for _, b := range n.bootstrappers {
		g.Go(func() error {
			if err := n.host.Connect(ctx, b); err != nil {
				log.Warnw("connecting to bootstrapper", "peer", b.ID, "err", err)
			}
			return nil
		})
	}
	g.Wait() //nolint:errcheck
}

// initStoreHead initializes an empty header store with a head fetched from
// the trusted peers, performing subjective initialization on the first run.
func (n *Node) initStoreHead(ctx context.Context) error {
	_, err := n.hstore.Head(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, header.ErrNoHead):
	default:
		return err
	}

	trusted, err := n.exchange.Head(ctx)
	if err != nil {
		return err
	}
	return n.hstore.Init(ctx, trusted)
}

// watchFraud halts syncing and sampling as soon as a valid bad encoding
// proof is reported, signaling a network compromise.
func (n *Node) watchFraud(ctx context.Context) {
	defer close(n.fraudDn)

	sub := n.fraud.Subscribe()
	defer sub.Cancel()

	proof, err := sub.Proof(ctx)
	if err != nil {
		// node is shutting down
		return
	}
	n.halt(proof.Height())
}

func (n *Node) halt(height uint64) {
	n.haltOnce.Do(func() {
		log.Errorw("NETWORK COMPROMISE DETECTED, halting sync and sampling", "height", height)
		n.bus.Publish(events.NetworkCompromised{Height: height})

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		for _, s := range n.haltables {
			if err := s.Stop(ctx); err != nil {
				log.Errorw("stopping service on compromise", "err", err)
			}
		}
	})
}

func bootstrappersFor(network build.Network, cfg P2PConfig) ([]peer.AddrInfo, error) {
	if len(cfg.BootstrapPeers) != 0 {
		return build.ParseAddrInfos(cfg.BootstrapPeers)
	}
	return build.BootstrappersFor(network)
}

func trustedPeersFor(bootstrappers []peer.AddrInfo, cfg P2PConfig) ([]peer.AddrInfo, error) {
	if len(cfg.TrustedPeers) != 0 {
		return build.ParseAddrInfos(cfg.TrustedPeers)
	}
	return bootstrappers, nil
}
