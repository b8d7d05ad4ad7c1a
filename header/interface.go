package header

import (
	"context"

	pubsub "github.com/libp2p/go-libp2p-pubsub"
)

// Subscriber encompasses the behavior necessary to subscribe/unsubscribe from
// new ExtendedHeader events from the network.
type Subscriber interface {
	// Subscribe creates a long-living Subscription for validated
	// ExtendedHeaders. Multiple Subscriptions can be created.
	Subscribe() (Subscription, error)
	// AddValidator registers a Validator for all Subscriptions.
	// Registered Validators screen ExtendedHeaders for their validity
	// before they are sent through Subscriptions.
	AddValidator(func(context.Context, *ExtendedHeader) pubsub.ValidationResult) error
}

// Subscription listens for new ExtendedHeaders.
type Subscription interface {
	// NextHeader returns the newest verified and valid ExtendedHeader
	// in the network.
	NextHeader(ctx context.Context) (*ExtendedHeader, error)
	// Cancel cancels the subscription.
	Cancel()
}

// Broadcaster broadcasts an ExtendedHeader to the network.
type Broadcaster interface {
	Broadcast(ctx context.Context, header *ExtendedHeader, opts ...pubsub.PubOpt) error
}

// Getter contains the behavior necessary for a component to retrieve
// headers that have been processed during header sync.
type Getter interface {
	// Head returns the latest known header.
	Head(ctx context.Context) (*ExtendedHeader, error)
	// GetByHeight returns the header corresponding to the given height.
	GetByHeight(ctx context.Context, height uint64) (*ExtendedHeader, error)
	// GetRangeByHeight returns the given range [from:from+amount) of headers.
	GetRangeByHeight(ctx context.Context, from, amount uint64) ([]*ExtendedHeader, error)
}

// Exchange encompasses the behavior necessary to request headers from the
// network.
type Exchange interface {
	Getter
}

// Store encompasses the behavior necessary to store and retrieve headers
// from a node's local storage.
type Store interface {
	// Start starts the store.
	Start(context.Context) error
	// Stop stops the store by preventing further writes and waiting for the
	// ongoing ones to finish.
	Stop(context.Context) error

	Getter

	// Init initializes the Store with the given head, meaning it is initial,
	// trusted header of the Store's subjective chain.
	Init(context.Context, *ExtendedHeader) error
	// Get returns the header corresponding to the given hash.
	Get(ctx context.Context, hash Hash) (*ExtendedHeader, error)
	// Has checks whether the header with the given hash is stored.
	Has(ctx context.Context, hash Hash) (bool, error)
	// Height reports the height of the highest stored header.
	Height() uint64
	// Tail returns the lowest stored header.
	Tail(ctx context.Context) (*ExtendedHeader, error)
	// Append stores and verifies the given headers. The headers must be
	// adjacent to each other and to the current head of the Store.
	Append(ctx context.Context, headers ...*ExtendedHeader) error
	// DeleteTo deletes all headers up to but not including the given height,
	// moving the Store's Tail up.
	DeleteTo(ctx context.Context, to uint64) error
}
