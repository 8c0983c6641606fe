package inmemory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"blogapi/internal/model"
	"blogapi/internal/service"
	"blogapi/pkg/logger"
)

const defaultBuffer = 64

var ErrBusClosed = errors.New("notification bus closed")

// subscription is one live listener of a recipient, typically a websocket.
type subscription struct {
	recipientID int64
	ch          chan model.Notification
	dropped     int
}

// NotificationBus delivers fresh notifications to the live listeners of their
// recipient. A listener whose buffer is full loses the notification; the
// stored record stays readable through the list endpoint.
type NotificationBus struct {
	mu     sync.Mutex
	subs   map[int64]map[*subscription]struct{}
	buf    int
	done   chan struct{}
	closed bool
}

var _ service.NotificationBus = (*NotificationBus)(nil)

func New(buf int) *NotificationBus {
	if buf <= 0 {
		buf = defaultBuffer
	}
	return &NotificationBus{
		subs: make(map[int64]map[*subscription]struct{}),
		buf:  buf,
		done: make(chan struct{}),
	}
}

// Subscribe opens a listener for recipientID. The channel is closed when ctx
// ends or the bus is closed.
func (b *NotificationBus) Subscribe(ctx context.Context, recipientID int64) (<-chan model.Notification, error) {
	sub := &subscription{
		recipientID: recipientID,
		ch:          make(chan model.Notification, b.buf),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrBusClosed
	}
	if b.subs[recipientID] == nil {
		b.subs[recipientID] = make(map[*subscription]struct{})
	}
	b.subs[recipientID][sub] = struct{}{}
	b.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-b.done:
		}
		if dropped, ok := b.remove(sub); ok && dropped > 0 {
			logger.FromContext(ctx).Warn("notification listener lagged",
				"recipient_id", recipientID,
				"dropped", dropped,
			)
		}
	}()

	return sub.ch, nil
}

// Publish hands n to every listener of recipientID without waiting on any of them.
func (b *NotificationBus) Publish(ctx context.Context, recipientID int64, n model.Notification) error {
	if n.RecipientID != recipientID {
		return fmt.Errorf("%w: notification %d is addressed to %d, not %d",
			service.ErrInvalidRequest, n.ID, n.RecipientID, recipientID)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBusClosed
	}
	for sub := range b.subs[recipientID] {
		select {
		case sub.ch <- n:
		default:
			sub.dropped++
			logger.FromContext(ctx).Debug("notification dropped for slow listener",
				"recipient_id", recipientID,
				"notification_id", n.ID,
			)
		}
	}
	return nil
}

// Close ends every open listener. Later subscribes and publishes fail with ErrBusClosed.
func (b *NotificationBus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	close(b.done)
}

// remove unregisters sub and closes its channel. Only the first call for a
// given sub reports ok.
func (b *NotificationBus) remove(sub *subscription) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	set := b.subs[sub.recipientID]
	if _, ok := set[sub]; !ok {
		return 0, false
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(b.subs, sub.recipientID)
	}
	close(sub.ch)
	return sub.dropped, true
}
