package service

import (
	"testing"

	"github.com/freshmart/backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestBroadcaster_PublishWithoutSubscribers(t *testing.T) {
	b := newBroadcaster(2)
	dropped := b.publish(&domain.Notification{ID: "n1", UserID: 1})
	assert.Equal(t, 0, dropped)
}

func TestBroadcaster_DropOnFullBuffer(t *testing.T) {
	b := newBroadcaster(1)
	ch := b.subscribe(1)

	assert.Equal(t, 0, b.publish(&domain.Notification{ID: "n1", UserID: 1}))
	assert.Equal(t, 1, b.publish(&domain.Notification{ID: "n2", UserID: 1}))

	got := <-ch
	assert.Equal(t, "n1", got.ID)
}

func TestBroadcaster_Unsubscribe(t *testing.T) {
	b := newBroadcaster(1)
	ch := b.subscribe(1)
	b.unsubscribe(1, ch)

	assert.Equal(t, 0, b.publish(&domain.Notification{ID: "n1", UserID: 1}))
	select {
	case n := <-ch:
		t.Fatalf("received %s after unsubscribe", n.ID)
	default:
	}
}

func TestBroadcaster_MultipleSubscribers(t *testing.T) {
	b := newBroadcaster(1)
	first := b.subscribe(1)
	second := b.subscribe(1)

	assert.Equal(t, 0, b.publish(&domain.Notification{ID: "n1", UserID: 1}))
	assert.Equal(t, "n1", (<-first).ID)
	assert.Equal(t, "n1", (<-second).ID)
}
