package p2p

import (
	"context"
	"fmt"

	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/celestiaorg/celestia-light/header"
)

// Subscriber manages the lifecycle and relationship of the header module
// with the "header-sub" gossipsub topic.
type Subscriber struct {
	pubsubTopicID string

	pubsub *pubsub.PubSub
	topic  *pubsub.Topic
	msgID  pubsub.MsgIdFunction
}

// NewSubscriber returns a Subscriber that manages the header module's
// relationship with the "header-sub" gossipsub topic.
func NewSubscriber(ps *pubsub.PubSub, msgID pubsub.MsgIdFunction, network string) *Subscriber {
	return &Subscriber{
		pubsubTopicID: pubsubTopicID(network),
		pubsub:        ps,
		msgID:         msgID,
	}
}

// Start starts the Subscriber, joining the "header-sub" topic.
func (p *Subscriber) Start(context.Context) (err error) {
	log.Infow("joining topic", "topic ID", p.pubsubTopicID)
	p.topic, err = p.pubsub.Join(p.pubsubTopicID, pubsub.WithTopicMessageIdFn(p.msgID))
	return err
}

// Stop closes the topic and unregisters its validator.
func (p *Subscriber) Stop(context.Context) error {
	err := p.pubsub.UnregisterTopicValidator(p.pubsubTopicID)
	if err != nil {
		log.Warnf("unregistering validator: %s", err)
	}

	return p.topic.Close()
}

// AddValidator applies basic pubsub validator for the topic.
func (p *Subscriber) AddValidator(val func(context.Context, *header.ExtendedHeader) pubsub.ValidationResult) error {
	pval := func(ctx context.Context, p peer.ID, msg *pubsub.Message) pubsub.ValidationResult {
		maybeHead, err := header.UnmarshalExtendedHeader(msg.Data)
		if err != nil {
			log.Errorw("unmarshalling header",
				"from", p.ShortString(),
				"err", err)
			return pubsub.ValidationReject
		}
		msg.ValidatorData = maybeHead
		return val(ctx, maybeHead)
	}
	return p.pubsub.RegisterTopicValidator(p.pubsubTopicID, pval)
}

// Subscribe returns a new subscription to the Subscriber's topic.
func (p *Subscriber) Subscribe() (header.Subscription, error) {
	if p.topic == nil {
		return nil, fmt.Errorf("header topic is not instantiated, service must be started before subscribing")
	}

	return newSubscription(p.topic)
}

// Broadcast broadcasts the given ExtendedHeader to the topic.
func (p *Subscriber) Broadcast(ctx context.Context, header *header.ExtendedHeader, opts ...pubsub.PubOpt) error {
	bin, err := header.MarshalBinary()
	if err != nil {
		return err
	}
	return p.topic.Publish(ctx, bin, opts...)
}
