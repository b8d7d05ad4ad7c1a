package headertest

import (
	"bytes"
	"context"
	"testing"

	"github.com/celestiaorg/celestia-light/header"
)

// Store is a simple in-memory header Store for testing.
type Store struct {
	Headers    map[uint64]*header.ExtendedHeader
	HeadHeight uint64
	TailHeight uint64
}

// NewStore creates a mock store and populates it with the given amount of
// headers from the suite.
func NewStore(t *testing.T, suite *TestSuite, amount int) *Store {
	store := &Store{
		Headers: make(map[uint64]*header.ExtendedHeader),
	}

	store.add(suite.Head())
	for i := 1; i < amount; i++ {
		store.add(suite.NextHeader())
	}
	return store
}

func (m *Store) add(h *header.ExtendedHeader) {
	m.Headers[h.Height] = h
	if m.TailHeight == 0 || h.Height < m.TailHeight {
		m.TailHeight = h.Height
	}
	if h.Height > m.HeadHeight {
		m.HeadHeight = h.Height
	}
}

func (m *Store) Start(context.Context) error { return nil }
func (m *Store) Stop(context.Context) error  { return nil }

func (m *Store) Init(_ context.Context, h *header.ExtendedHeader) error {
	m.add(h)
	return nil
}

func (m *Store) Head(context.Context) (*header.ExtendedHeader, error) {
	if m.HeadHeight == 0 {
		return nil, header.ErrNoHead
	}
	return m.Headers[m.HeadHeight], nil
}

func (m *Store) Get(_ context.Context, hash header.Hash) (*header.ExtendedHeader, error) {
	for _, h := range m.Headers {
		if bytes.Equal(h.Hash(), hash) {
			return h, nil
		}
	}
	return nil, header.ErrNotFound
}

func (m *Store) GetByHeight(_ context.Context, height uint64) (*header.ExtendedHeader, error) {
	h, ok := m.Headers[height]
	if !ok {
		return nil, header.ErrNotFound
	}
	return h, nil
}

func (m *Store) GetRangeByHeight(_ context.Context, from, amount uint64) ([]*header.ExtendedHeader, error) {
	headers := make([]*header.ExtendedHeader, 0, amount)
	for height := from; height < from+amount; height++ {
		h, ok := m.Headers[height]
		if !ok {
			return nil, header.ErrNotFound
		}
		headers = append(headers, h)
	}
	return headers, nil
}

func (m *Store) Has(_ context.Context, hash header.Hash) (bool, error) {
	for _, h := range m.Headers {
		if bytes.Equal(h.Hash(), hash) {
			return true, nil
		}
	}
	return false, nil
}

func (m *Store) Height() uint64 {
	return m.HeadHeight
}

func (m *Store) Tail(context.Context) (*header.ExtendedHeader, error) {
	h, ok := m.Headers[m.TailHeight]
	if !ok {
		return nil, header.ErrNotFound
	}
	return h, nil
}

func (m *Store) Append(_ context.Context, headers ...*header.ExtendedHeader) error {
	for _, h := range headers {
		if m.HeadHeight != 0 && h.Height != m.HeadHeight+1 {
			return &header.ErrNonAdjacent{Head: m.HeadHeight, Attempted: h.Height}
		}
		m.add(h)
	}
	return nil
}

func (m *Store) DeleteTo(_ context.Context, to uint64) error {
	for height := m.TailHeight; height < to; height++ {
		delete(m.Headers, height)
	}
	m.TailHeight = to
	return nil
}
