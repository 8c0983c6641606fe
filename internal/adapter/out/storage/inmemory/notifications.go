package inmemory

import (
	"context"
	"slices"
	"sync"
	"time"

	"blogapi/internal/model"
)

type NotificationStorage struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]model.Notification
}

func NewNotificationStorage() *NotificationStorage {
	return &NotificationStorage{
		byID: make(map[int64]model.Notification),
	}
}

func (s *NotificationStorage) CreateNotification(_ context.Context, n model.Notification) (model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	n.ID = s.nextID
	n.CreatedAt = time.Now()
	s.byID[n.ID] = n
	return n, nil
}

func (s *NotificationStorage) UpdateNotificationMessage(_ context.Context, commentID int64, message string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated int64
	for id, n := range s.byID {
		if n.CommentID != commentID {
			continue
		}
		n.Message = message
		s.byID[id] = n
		updated++
	}
	return updated, nil
}

func (s *NotificationStorage) UpdateNotificationRecipient(_ context.Context, commentIDs []int64, recipientID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated int64
	for id, n := range s.byID {
		if !slices.Contains(commentIDs, n.CommentID) {
			continue
		}
		n.RecipientID = recipientID
		s.byID[id] = n
		updated++
	}
	return updated, nil
}

func (s *NotificationStorage) DeleteNotificationsByComments(_ context.Context, commentIDs []int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, n := range s.byID {
		if slices.Contains(commentIDs, n.CommentID) {
			delete(s.byID, id)
			deleted++
		}
	}
	return deleted, nil
}

// GetNotificationsByRecipient returns the recipient's notifications, newest first.
func (s *NotificationStorage) GetNotificationsByRecipient(_ context.Context, recipientID int64) ([]model.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Notification, 0)
	for _, n := range s.byID {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	slices.SortFunc(out, func(a, b model.Notification) int {
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		default:
			return 0
		}
	})
	return out, nil
}
