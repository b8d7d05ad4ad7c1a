package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe()
	defer sub.Cancel()

	bus.Publish(AddedHeaderFromHeaderSub{Height: 5})
	bus.Publish(PrunedHeaders{ToHeight: 3})

	e := <-sub.Events()
	assert.Equal(t, TypeAddedHeaderFromHeaderSub, e.Type())
	assert.EqualValues(t, 5, e.(AddedHeaderFromHeaderSub).Height)

	e = <-sub.Events()
	assert.Equal(t, TypePrunedHeaders, e.Type())
}

// TestBus_DropOldest ensures publishing never blocks on a slow subscriber and
// that the oldest events are the ones sacrificed.
func TestBus_DropOldest(t *testing.T) {
	bus := NewBus()
	sub := bus.SubscribeWithCapacity(2)
	defer sub.Cancel()

	bus.Publish(AddedHeaderFromHeaderSub{Height: 1})
	bus.Publish(AddedHeaderFromHeaderSub{Height: 2})
	bus.Publish(AddedHeaderFromHeaderSub{Height: 3})

	e := <-sub.Events()
	require.Equal(t, TypeAddedHeaderFromHeaderSub, e.Type())
	assert.EqualValues(t, 2, e.(AddedHeaderFromHeaderSub).Height)

	e = <-sub.Events()
	assert.EqualValues(t, 3, e.(AddedHeaderFromHeaderSub).Height)

	select {
	case <-sub.Events():
		t.Fatal("expected no more events")
	default:
	}
}

func TestBus_MultipleSubscribers(t *testing.T) {
	bus := NewBus()
	first := bus.Subscribe()
	second := bus.Subscribe()
	defer first.Cancel()
	defer second.Cancel()

	bus.Publish(NodeStopped{})

	assert.Equal(t, TypeNodeStopped, (<-first.Events()).Type())
	assert.Equal(t, TypeNodeStopped, (<-second.Events()).Type())
}

func TestBus_CancelStopsDelivery(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe()
	sub.Cancel()

	bus.Publish(NodeStopped{})

	select {
	case <-sub.Events():
		t.Fatal("expected no events after cancel")
	default:
	}
}

func TestBus_NilBusDropsEvents(t *testing.T) {
	var bus *Bus
	// must not panic
	bus.Publish(NodeStopped{})
}
