package service

import (
	"sync"

	"github.com/freshmart/backend/internal/core/domain"
)

// broadcaster is the process-wide notification fan-out: one buffered channel
// per live subscriber, keyed by user. Publishing never blocks; when a
// subscriber's buffer is full the notification is dropped for that subscriber
// (it is already persisted, so nothing is lost from storage).
type broadcaster struct {
	mu     sync.RWMutex
	subs   map[uint64][]chan *domain.Notification
	buffer int
}

func newBroadcaster(buffer int) *broadcaster {
	if buffer <= 0 {
		buffer = 16
	}
	return &broadcaster{
		subs:   make(map[uint64][]chan *domain.Notification),
		buffer: buffer,
	}
}

func (b *broadcaster) subscribe(userID uint64) chan *domain.Notification {
	ch := make(chan *domain.Notification, b.buffer)
	b.mu.Lock()
	b.subs[userID] = append(b.subs[userID], ch)
	b.mu.Unlock()
	return ch
}

func (b *broadcaster) unsubscribe(userID uint64, ch chan *domain.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	channels := b.subs[userID]
	for i, c := range channels {
		if c == ch {
			b.subs[userID] = append(channels[:i], channels[i+1:]...)
			break
		}
	}
	if len(b.subs[userID]) == 0 {
		delete(b.subs, userID)
	}
}

// publish delivers to the notification's user and reports how many
// subscribers had to be skipped because their buffer was full.
func (b *broadcaster) publish(n *domain.Notification) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	dropped := 0
	for _, ch := range b.subs[n.UserID] {
		select {
		case ch <- n:
		default:
			dropped++
		}
	}
	return dropped
}
