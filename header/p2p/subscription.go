package p2p

import (
	"context"
	"fmt"

	pubsub "github.com/libp2p/go-libp2p-pubsub"

	"github.com/celestiaorg/celestia-light/header"
)

// subscription handles retrieving ExtendedHeaders from the header pubsub topic.
type subscription struct {
	topic        *pubsub.Topic
	subscription *pubsub.Subscription
}

func newSubscription(topic *pubsub.Topic) (*subscription, error) {
	sub, err := topic.Subscribe()
	if err != nil {
		return nil, err
	}

	return &subscription{
		topic:        topic,
		subscription: sub,
	}, nil
}

// NextHeader returns the next (latest) verified ExtendedHeader from the
// network.
func (s *subscription) NextHeader(ctx context.Context) (*header.ExtendedHeader, error) {
	msg, err := s.subscription.Next(ctx)
	if err != nil {
		return nil, err
	}

	eh, ok := msg.ValidatorData.(*header.ExtendedHeader)
	if !ok {
		// only validated messages reach here, so ValidatorData is always set
		return nil, fmt.Errorf("header/p2p: invalid message type %T", msg.ValidatorData)
	}
	return eh, nil
}

// Cancel cancels the subscription to new ExtendedHeaders from the network.
func (s *subscription) Cancel() {
	s.subscription.Cancel()
}
