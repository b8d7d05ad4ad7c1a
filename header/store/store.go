package store

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/namespace"
	logging "github.com/ipfs/go-log/v2"

	"github.com/celestiaorg/celestia-light/header"
)

var log = logging.Logger("header/store")

// errStoppedStore is returned for attempted operations on a stopped store
var errStoppedStore = errors.New("header/store: stopped store")

// Store implements the Store interface for ExtendedHeaders over Datastore.
type Store struct {
	// header storing
	//
	// underlying KV store
	ds datastore.Batching
	// cache of headers by hash
	cache *lru.Cache[string, *header.ExtendedHeader]

	// header heights management
	//
	// maps heights to hashes
	heightIndex *heightIndexer
	// manages current store read head height (1) and
	// allows callers to wait until header for a height is stored (2)
	heightSub *heightSub
	// height of the lowest stored header
	tailHeight atomic.Uint64

	// writing to datastore
	//
	// queue of headers to be written
	writes chan []*header.ExtendedHeader
	// signals when writes are finished
	writesDn chan struct{}
	// writeHead maintains the current write head
	writeHead atomic.Pointer[header.ExtendedHeader]
	// pending keeps headers pending to be written in one batch
	pending *batch

	Params Parameters
}

// NewStore constructs a Store over datastore.
// The datastore must have a head there otherwise Start will error.
// For first initialization of Store use NewStoreWithHead.
func NewStore(ds datastore.Batching, opts ...Option) (*Store, error) {
	return newStore(ds, opts...)
}

// NewStoreWithHead initiates a new Store and forcefully sets a given trusted header as head.
func NewStoreWithHead(
	ctx context.Context,
	ds datastore.Batching,
	head *header.ExtendedHeader,
	opts ...Option,
) (*Store, error) {
	store, err := newStore(ds, opts...)
	if err != nil {
		return nil, err
	}

	return store, store.Init(ctx, head)
}

func newStore(ds datastore.Batching, opts ...Option) (*Store, error) {
	params := DefaultParameters()
	for _, opt := range opts {
		opt(&params)
	}

	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("header/store: store creation failed: %w", err)
	}

	cache, err := lru.New[string, *header.ExtendedHeader](params.StoreCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create store cache: %w", err)
	}

	wrappedStore := namespace.Wrap(ds, storePrefix)
	index, err := newHeightIndexer(wrappedStore, params.IndexCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create height indexer: %w", err)
	}

	return &Store{
		Params:      params,
		ds:          wrappedStore,
		heightSub:   newHeightSub(),
		writes:      make(chan []*header.ExtendedHeader, 16),
		writesDn:    make(chan struct{}),
		cache:       cache,
		heightIndex: index,
		pending:     newBatch(params.WriteBatchSize),
	}, nil
}

func (s *Store) Init(ctx context.Context, initial *header.ExtendedHeader) error {
	// trust the given header as the initial head
	err := s.flush(ctx, initial)
	if err != nil {
		return err
	}

	if err = s.writeTail(ctx, initial.Height); err != nil {
		return err
	}

	log.Infow("initialized head", "height", initial.Height, "hash", initial.Hash())
	return nil
}

func (s *Store) Start(ctx context.Context) error {
	// load the head to warm up the height subscription,
	// so height lookups don't block on a fresh store
	_, err := s.Head(ctx)
	if err != nil && !errors.Is(err, header.ErrNoHead) {
		return err
	}

	go s.flushLoop()
	return nil
}

func (s *Store) Stop(ctx context.Context) error {
	select {
	case <-s.writesDn:
		return errStoppedStore
	default:
	}
	// signal to prevent further writes to Store
	s.writes <- nil
	select {
	case <-s.writesDn: // wait till it is done writing
	case <-ctx.Done():
		return ctx.Err()
	}

	// cleanup caches
	s.cache.Purge()
	s.heightIndex.cache.Purge()
	return nil
}

func (s *Store) Height() uint64 {
	return s.heightSub.Height()
}

func (s *Store) Head(ctx context.Context) (*header.ExtendedHeader, error) {
	head, err := s.GetByHeight(ctx, s.heightSub.Height())
	if err == nil {
		return head, nil
	}

	head, err = s.readHead(ctx)
	switch {
	default:
		return nil, err
	case errors.Is(err, datastore.ErrNotFound), errors.Is(err, header.ErrNotFound):
		return nil, header.ErrNoHead
	case err == nil:
		s.heightSub.SetHeight(head.Height)
		log.Infow("loaded head", "height", head.Height, "hash", head.Hash())
		return head, nil
	}
}

// Tail returns the lowest stored header.
func (s *Store) Tail(ctx context.Context) (*header.ExtendedHeader, error) {
	tail := s.tailHeight.Load()
	if tail == 0 {
		b, err := s.ds.Get(ctx, tailKey)
		if err != nil {
			if errors.Is(err, datastore.ErrNotFound) {
				return nil, header.ErrNoHead
			}
			return nil, err
		}
		tail = binary.BigEndian.Uint64(b)
		s.tailHeight.Store(tail)
	}
	return s.GetByHeight(ctx, tail)
}

func (s *Store) Get(ctx context.Context, hash header.Hash) (*header.ExtendedHeader, error) {
	if v, ok := s.cache.Get(hash.String()); ok {
		return v, nil
	}
	// check if the requested header is not yet written on disk
	if h := s.pending.Get(hash); h != nil {
		return h, nil
	}

	b, err := s.ds.Get(ctx, hashKey(hash))
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, header.ErrNotFound
		}

		return nil, err
	}

	h, err := header.UnmarshalExtendedHeader(b)
	if err != nil {
		return nil, err
	}

	s.cache.Add(h.Hash().String(), h)
	return h, nil
}

func (s *Store) GetByHeight(ctx context.Context, height uint64) (*header.ExtendedHeader, error) {
	if height == 0 {
		return nil, fmt.Errorf("header/store: height must be bigger than zero")
	}
	// if the requested 'height' was not yet published
	// we subscribe to it
	h, err := s.heightSub.Sub(ctx, height)
	if !errors.Is(err, errElapsedHeight) {
		return h, err
	}
	// otherwise, the errElapsedHeight is thrown,
	// which means the requested 'height' should be present
	//
	// check if the requested header is not yet written on disk
	if h := s.pending.GetByHeight(height); h != nil {
		return h, nil
	}

	hash, err := s.heightIndex.HashByHeight(ctx, height)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, header.ErrNotFound
		}

		return nil, err
	}

	return s.Get(ctx, hash)
}

// GetRangeByHeight returns the range [from:from+amount) of headers, walking
// the chain down from the last header of the range by the hash links.
func (s *Store) GetRangeByHeight(ctx context.Context, from, amount uint64) ([]*header.ExtendedHeader, error) {
	if amount == 0 {
		return nil, nil
	}
	h, err := s.GetByHeight(ctx, from+amount-1)
	if err != nil {
		return nil, err
	}

	headers := make([]*header.ExtendedHeader, amount)
	for i := amount - 1; i > 0; i-- {
		headers[i] = h
		h, err = s.Get(ctx, h.LastHeaderHash)
		if err != nil {
			return nil, err
		}
	}
	headers[0] = h

	return headers, nil
}

func (s *Store) Has(ctx context.Context, hash header.Hash) (bool, error) {
	if ok := s.cache.Contains(hash.String()); ok {
		return ok, nil
	}
	// check if the requested header is not yet written on disk
	if ok := s.pending.Has(hash); ok {
		return ok, nil
	}

	return s.ds.Has(ctx, hashKey(hash))
}

// HasAt reports whether the header at the given height is already stored.
func (s *Store) HasAt(_ context.Context, height uint64) bool {
	return height != uint64(0) && s.Height() >= height
}

func (s *Store) Append(ctx context.Context, headers ...*header.ExtendedHeader) error {
	lh := len(headers)
	if lh == 0 {
		return nil
	}

	var err error
	// take current write head to verify headers against
	var head *header.ExtendedHeader
	headPtr := s.writeHead.Load()
	if headPtr == nil {
		head, err = s.Head(ctx)
		if err != nil {
			return err
		}
	} else {
		head = headPtr
	}

	// collect valid headers
	verified := make([]*header.ExtendedHeader, 0, lh)
	for i, h := range headers {
		// the store requires all headers to be appended sequentially and adjacently
		if h.Height != head.Height+1 {
			return &header.ErrNonAdjacent{
				Head:      head.Height,
				Attempted: h.Height,
			}
		}

		err = head.Verify(h)
		if err != nil {
			var verErr *header.VerifyError
			if errors.As(err, &verErr) {
				log.Errorw("invalid header",
					"height_of_head", head.Height,
					"hash_of_head", head.Hash(),
					"height_of_invalid", h.Height,
					"hash_of_invalid", h.Hash(),
					"reason", verErr.Reason)
			}
			// if the first header is invalid, no need to go further
			if i == 0 {
				// and simply return
				return err
			}
			// otherwise, stop the loop and apply headers that appeared to be valid
			break
		}
		verified, head = append(verified, h), h
	}

	// queue headers to be written on disk
	select {
	case s.writes <- verified:
		ln := len(verified)
		s.writeHead.Store(verified[ln-1])
		wh := s.writeHead.Load()
		log.Infow("new head", "height", wh.Height, "hash", wh.Hash())
		// we return an error here after writing,
		// as there might be an invalid header in between of a given range
		return err
	case <-s.writesDn:
		return errStoppedStore
	case <-ctx.Done():
		return ctx.Err()
	}
}

// DeleteTo deletes all headers up to but not including the given height,
// moving the Store's tail up. It refuses to delete past the current head.
func (s *Store) DeleteTo(ctx context.Context, to uint64) error {
	head, err := s.Head(ctx)
	if err != nil {
		return err
	}
	if to > head.Height {
		return fmt.Errorf("header/store: delete to %d goes past the head %d", to, head.Height)
	}

	tail := s.tailHeight.Load()
	if tail == 0 {
		th, err := s.Tail(ctx)
		if err != nil {
			return err
		}
		tail = th.Height
	}
	if to <= tail {
		return nil
	}

	batch, err := s.ds.Batch(ctx)
	if err != nil {
		return err
	}

	for height := tail; height < to; height++ {
		hash, err := s.heightIndex.HashByHeight(ctx, height)
		if err != nil {
			if errors.Is(err, datastore.ErrNotFound) {
				continue
			}
			return err
		}

		if err = batch.Delete(ctx, hashKey(hash)); err != nil {
			return err
		}
		s.cache.Remove(hash.String())
	}
	if err = s.heightIndex.DeleteTo(ctx, batch, tail, to); err != nil {
		return err
	}

	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, to)
	if err = batch.Put(ctx, tailKey, b); err != nil {
		return err
	}

	if err = batch.Commit(ctx); err != nil {
		return err
	}

	s.tailHeight.Store(to)
	log.Infow("deleted headers", "from", tail, "to", to)
	return nil
}

// flushLoop performs writing task to the underlying datastore in a separate routine
// This way writes are controlled and manageable from one place allowing
// (1) Appends not to be blocked on long disk IO writes and underlying DB compactions
// (2) Batching header writes
func (s *Store) flushLoop() {
	defer close(s.writesDn)
	ctx := context.Background()
	for headers := range s.writes {
		if len(headers) != 0 {
			// add headers to the pending and ensure they are accessible
			s.pending.Append(headers...)
			// and notify waiters if any + increase current read head height
			// it is important to do Pub after updating pending
			// so pending is consistent with atomic Height counter on the heightSub
			s.heightSub.Pub(headers...)
		}
		// don't flush and continue if pending batch is not grown enough,
		// and Store is not stopping(headers == nil)
		if s.pending.Len() < s.Params.WriteBatchSize && headers != nil {
			continue
		}

		err := s.flush(ctx, s.pending.GetAll()...)
		if err != nil {
			log.Errorw("writing header batch", "err", err)
			continue
		}
		// reset pending
		s.pending.Reset()

		if headers == nil {
			// a signal to stop
			return
		}
	}
}

// flush writes the given batch to datastore.
func (s *Store) flush(ctx context.Context, headers ...*header.ExtendedHeader) error {
	ln := len(headers)
	if ln == 0 {
		return nil
	}

	batch, err := s.ds.Batch(ctx)
	if err != nil {
		return err
	}

	// collect all the headers in the batch to be written
	for _, h := range headers {
		b, err := h.MarshalBinary()
		if err != nil {
			return err
		}

		err = batch.Put(ctx, headerKey(h), b)
		if err != nil {
			return err
		}
	}

	// add reference to the new head to the batch
	err = batch.Put(ctx, headKey, headers[ln-1].Hash())
	if err != nil {
		return err
	}

	// write height indexes for headers as well
	err = s.heightIndex.IndexTo(ctx, batch, headers...)
	if err != nil {
		return err
	}

	// finally, commit the batch on disk
	return batch.Commit(ctx)
}

// writeTail persists the given height as the tail of the stored chain.
func (s *Store) writeTail(ctx context.Context, height uint64) error {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, height)
	if err := s.ds.Put(ctx, tailKey, b); err != nil {
		return err
	}
	s.tailHeight.Store(height)
	return nil
}

// readHead loads the head from the datastore.
func (s *Store) readHead(ctx context.Context) (*header.ExtendedHeader, error) {
	b, err := s.ds.Get(ctx, headKey)
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, header.Hash(b))
}
