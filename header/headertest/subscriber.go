package headertest

import (
	"context"

	pubsub "github.com/libp2p/go-libp2p-pubsub"

	"github.com/celestiaorg/celestia-light/header"
)

// Subscriber is a dummy Subscriber that feeds ExtendedHeaders
// through a plain channel.
type Subscriber struct {
	Headers chan *header.ExtendedHeader

	Validator func(context.Context, *header.ExtendedHeader) pubsub.ValidationResult
}

func NewSubscriber() *Subscriber {
	return &Subscriber{
		Headers: make(chan *header.ExtendedHeader, 16),
	}
}

func (s *Subscriber) AddValidator(val func(context.Context, *header.ExtendedHeader) pubsub.ValidationResult) error {
	s.Validator = val
	return nil
}

func (s *Subscriber) Subscribe() (header.Subscription, error) {
	return &subscription{headers: s.Headers}, nil
}

type subscription struct {
	headers chan *header.ExtendedHeader
}

func (s *subscription) NextHeader(ctx context.Context) (*header.ExtendedHeader, error) {
	select {
	case h := <-s.headers:
		return h, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *subscription) Cancel() {}
