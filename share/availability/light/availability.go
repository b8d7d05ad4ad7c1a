package light

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/namespace"
	logging "github.com/ipfs/go-log/v2"
	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/celestiaorg/celestia-light/events"
	"github.com/celestiaorg/celestia-light/share"
)

var (
	log = logging.Logger("share/light")

	storePrefix = datastore.NewKey("sampling_result")
	saltKey     = datastore.NewKey("salt")
)

// Getter fetches single shares with proofs from remote peers.
type Getter interface {
	GetSample(ctx context.Context, root *share.Root, row, col int, peerID peer.ID) (*share.Sample, error)
}

// PeerGetter provides peers believed to store the full data squares.
type PeerGetter interface {
	Peers(context.Context) ([]peer.ID, error)
}

// ShareAvailability implements share.Availability using the Data Availability
// Sampling technique. It is light because it does not require downloading all
// the data to verify its availability. It is assumed that there are a lot of
// light availability instances on the network doing sampling over the same
// Root to collectively verify its availability.
type ShareAvailability struct {
	params *Parameters
	getter Getter
	peers  PeerGetter
	events events.Publisher

	ds   datastore.Datastore
	salt []byte

	dsLk sync.RWMutex
}

// NewShareAvailability creates a new light Availability.
func NewShareAvailability(
	getter Getter,
	peers PeerGetter,
	ds datastore.Batching,
	opts ...Option,
) (*ShareAvailability, error) {
	params := DefaultParameters()
	for _, opt := range opts {
		opt(params)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &ShareAvailability{
		params: params,
		getter: getter,
		peers:  peers,
		events: (*events.Bus)(nil),
		ds:     namespace.Wrap(ds, storePrefix),
	}, nil
}

// WithEvents sets the publisher sampling progress events are delivered to.
// Must be called before Start.
func (la *ShareAvailability) WithEvents(pub events.Publisher) {
	la.events = pub
}

// Start loads the node's sampling salt, generating and persisting a fresh one
// on the first run. The salt keeps coordinate selection deterministic for this
// node only, other nodes sample independent coordinates for the same root.
func (la *ShareAvailability) Start(ctx context.Context) error {
	salt, err := la.ds.Get(ctx, saltKey)
	switch {
	case err == nil:
		la.salt = salt
		return nil
	case errors.Is(err, datastore.ErrNotFound):
		salt = make([]byte, 32)
		if _, err := rand.Read(salt); err != nil {
			return err
		}
		if err := la.ds.Put(ctx, saltKey, salt); err != nil {
			return err
		}
		la.salt = salt
		return nil
	default:
		return err
	}
}

func (la *ShareAvailability) Stop(context.Context) error {
	return nil
}

// SharesAvailable randomly samples `SampleAmount` amount of Shares committed
// to the given Root. This way SharesAvailable subjectively verifies that
// Shares are available.
func (la *ShareAvailability) SharesAvailable(ctx context.Context, root *share.Root, height uint64) error {
	// We assume the caller of this method has already performed basic
	// validation on the given root. If for some reason this has not happened,
	// the node should panic.
	if err := root.ValidateBasic(); err != nil {
		log.Errorw("availability validation cannot be performed on a malformed root", "err", err)
		panic(err)
	}

	// a minimal square commits to no data, nothing to sample
	if root.SquareWidth() <= 1 {
		if err := la.storeResult(ctx, height, &SamplingResult{}); err != nil {
			return err
		}
		la.events.Publish(events.SamplingFinished{Height: height, Accepted: true})
		return nil
	}

	res, err := la.loadResult(ctx, height)
	if err != nil {
		return err
	}
	if len(res.Remaining) == 0 && len(res.Available) > 0 {
		// sampling of this root is already done
		return nil
	}
	if res.Remaining == nil {
		res = NewSamplingResult(root.Hash(), la.salt, root.SquareWidth(), int(la.params.SampleAmount))
	}

	peers, err := la.peers.Peers(ctx)
	if err != nil {
		return err
	}
	if len(peers) == 0 {
		return fmt.Errorf("share/light: no peers to sample from: %w", share.ErrNotAvailable)
	}

	ctx, cancel := context.WithTimeout(ctx, share.AvailabilityTimeout)
	defer cancel()

	log.Debugw("starting sampling session", "root", root.String(), "height", height)
	start := time.Now()
	la.events.Publish(events.SamplingStarted{
		Height:      height,
		SquareWidth: root.SquareWidth(),
		Shares:      res.Remaining,
	})

	type outcome struct {
		coord share.SampleCoords
		err   error
	}
	outcomes := make(chan outcome, len(res.Remaining))
	for _, s := range res.Remaining {
		go func(s share.SampleCoords) {
			err := la.sampleCoord(ctx, root, height, s, peers)
			select {
			case outcomes <- outcome{coord: s, err: err}:
			case <-ctx.Done():
			}
		}(s)
	}

	var (
		failed    []share.SampleCoords
		byzantine *share.ErrByzantine
	)
	for range res.Remaining {
		var out outcome
		select {
		case out = <-outcomes:
			la.events.Publish(events.ShareSamplingResult{
				Height:      height,
				SquareWidth: root.SquareWidth(),
				Row:         out.coord.Row,
				Col:         out.coord.Col,
				Accepted:    out.err == nil,
			})
		case <-ctx.Done():
			out.err = ctx.Err()
		}

		switch {
		case out.err == nil:
			res.Available = append(res.Available, out.coord)
		case errors.As(out.err, &byzantine):
			// provably broken data takes precedence over everything else
			la.events.Publish(events.SamplingFinished{Height: height, Took: time.Since(start)})
			return byzantine
		case errors.Is(out.err, context.Canceled):
			return ctx.Err()
		default:
			failed = append(failed, out.coord)
		}
	}

	res.Remaining = failed
	if err := la.storeResult(ctx, height, res); err != nil {
		log.Errorw("storing sampling result", "height", height, "err", err)
	}

	la.events.Publish(events.SamplingFinished{
		Height:   height,
		Accepted: len(failed) == 0,
		Took:     time.Since(start),
	})

	if len(failed) > 0 {
		log.Warnw("availability validation failed",
			"root", root.String(), "height", height, "failed_samples", len(failed))
		return share.ErrNotAvailable
	}
	return nil
}

// sampleCoord fetches and verifies the share at the given coordinates,
// rotating through peers. A proof that is structurally valid yet mismatches
// the root is re-checked against one more distinct peer before the result is
// escalated as byzantine.
func (la *ShareAvailability) sampleCoord(
	ctx context.Context,
	root *share.Root,
	height uint64,
	coord share.SampleCoords,
	peers []peer.ID,
) error {
	var invalidProofs int
	for _, p := range peers {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		_, err := la.getter.GetSample(ctx, root, coord.Row, coord.Col, p)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, share.ErrInvalidProof):
			invalidProofs++
			if invalidProofs >= 2 {
				// two independent peers served valid proofs that do not match
				// the committed root
				return &share.ErrByzantine{Height: height, Coords: coord}
			}
		default:
			log.Debugw("sampling: peer returned err",
				"peer", p.String(), "row", coord.Row, "col", coord.Col, "err", err)
		}
	}

	return share.ErrNotAvailable
}

// DeleteSamples removes persisted sampling results for heights [from:to).
func (la *ShareAvailability) DeleteSamples(ctx context.Context, from, to uint64) error {
	la.dsLk.Lock()
	defer la.dsLk.Unlock()

	for height := from; height < to; height++ {
		if err := la.ds.Delete(ctx, resultKey(height)); err != nil {
			return fmt.Errorf("share/light: deleting sampling result for %d: %w", height, err)
		}
	}
	return nil
}

func (la *ShareAvailability) loadResult(ctx context.Context, height uint64) (*SamplingResult, error) {
	la.dsLk.RLock()
	defer la.dsLk.RUnlock()

	b, err := la.ds.Get(ctx, resultKey(height))
	if errors.Is(err, datastore.ErrNotFound) {
		return &SamplingResult{}, nil
	}
	if err != nil {
		return nil, err
	}

	var res SamplingResult
	if err := json.Unmarshal(b, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (la *ShareAvailability) storeResult(ctx context.Context, height uint64, res *SamplingResult) error {
	b, err := json.Marshal(res)
	if err != nil {
		return err
	}

	la.dsLk.Lock()
	defer la.dsLk.Unlock()
	return la.ds.Put(ctx, resultKey(height), b)
}

func resultKey(height uint64) datastore.Key {
	return datastore.NewKey(strconv.FormatUint(height, 10))
}
