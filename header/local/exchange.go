package local

import (
	"context"

	"github.com/celestiaorg/celestia-light/header"
)

// Exchange is an Exchange over the local Store, without any networking.
// It is mainly used for testing and sanity checks.
type Exchange struct {
	store header.Store
}

// NewExchange constructs a new local Exchange over the given Store.
func NewExchange(store header.Store) header.Exchange {
	return &Exchange{
		store: store,
	}
}

func (l *Exchange) Head(ctx context.Context) (*header.ExtendedHeader, error) {
	return l.store.Head(ctx)
}

func (l *Exchange) GetByHeight(ctx context.Context, height uint64) (*header.ExtendedHeader, error) {
	return l.store.GetByHeight(ctx, height)
}

func (l *Exchange) GetRangeByHeight(ctx context.Context, from, amount uint64) ([]*header.ExtendedHeader, error) {
	return l.store.GetRangeByHeight(ctx, from, amount)
}
