package service

import (
	"context"
	"fmt"

	"blogapi/internal/model"
	"blogapi/pkg/logger"
)

const editedPrefix = "edited: "

//go:generate mockgen -source=notifications.go -destination=./notifications_mock.go -package=service
type NotificationStorage interface {
	CreateNotification(ctx context.Context, n model.Notification) (model.Notification, error)
	UpdateNotificationMessage(ctx context.Context, commentID int64, message string) (int64, error)
	UpdateNotificationRecipient(ctx context.Context, commentIDs []int64, recipientID int64) (int64, error)
	DeleteNotificationsByComments(ctx context.Context, commentIDs []int64) (int64, error)
	GetNotificationsByRecipient(ctx context.Context, recipientID int64) ([]model.Notification, error)
}

type NotificationBus interface {
	Subscribe(ctx context.Context, recipientID int64) (<-chan model.Notification, error)
	Publish(ctx context.Context, recipientID int64, n model.Notification) error
}

// NotificationService is the fan-out side of the comment tree: it turns reply
// creation, edit and deletion into notification records.
type NotificationService struct {
	storage NotificationStorage
	bus     NotificationBus
}

func NewNotificationService(storage NotificationStorage, bus NotificationBus) *NotificationService {
	return &NotificationService{
		storage: storage,
		bus:     bus,
	}
}

// NotifyReply tells the author of parent that reply was posted under it.
func (s *NotificationService) NotifyReply(ctx context.Context, parent, reply model.Comment) (model.Notification, error) {
	if reply.ParentID == nil || *reply.ParentID != parent.ID {
		return model.Notification{}, fmt.Errorf("%w: comment %d is not a reply to %d", ErrInvalidRequest, reply.ID, parent.ID)
	}

	n, err := s.storage.CreateNotification(ctx, model.Notification{
		RecipientID: parent.UserID,
		SenderID:    reply.UserID,
		CommentID:   reply.ID,
		Message:     reply.Text,
	})
	if err != nil {
		return model.Notification{}, storageError("create notification", err)
	}
	return n, nil
}

// NotifyEdit rewrites the notification produced by reply, if there is one.
func (s *NotificationService) NotifyEdit(ctx context.Context, reply model.Comment) error {
	n, err := s.storage.UpdateNotificationMessage(ctx, reply.ID, editedPrefix+reply.Text)
	if err != nil {
		return storageError("update notification", err)
	}
	if n == 0 {
		logger.FromContext(ctx).Debug("no notification linked to edited reply", "comment_id", reply.ID)
	}
	return nil
}

// Purge drops the notifications produced by the given comments.
func (s *NotificationService) Purge(ctx context.Context, commentIDs []int64) error {
	if len(commentIDs) == 0 {
		return nil
	}
	n, err := s.storage.DeleteNotificationsByComments(ctx, commentIDs)
	if err != nil {
		return storageError("delete notifications", err)
	}
	logger.FromContext(ctx).Debug("notifications purged", "count", n)
	return nil
}

// Retarget moves the notifications produced by commentIDs to recipientID. It
// follows replies that were lifted to a new parent.
func (s *NotificationService) Retarget(ctx context.Context, commentIDs []int64, recipientID int64) error {
	if len(commentIDs) == 0 {
		return nil
	}
	n, err := s.storage.UpdateNotificationRecipient(ctx, commentIDs, recipientID)
	if err != nil {
		return storageError("retarget notifications", err)
	}
	logger.FromContext(ctx).Debug("notifications retargeted", "count", n, "recipient_id", recipientID)
	return nil
}

// Publish hands n to live listeners of its recipient. Delivery is best
// effort; the stored record is the source of truth.
func (s *NotificationService) Publish(ctx context.Context, n model.Notification) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, n.RecipientID, n); err != nil {
		logger.FromContext(ctx).Warn("notification publish failed", "notification_id", n.ID, "error", err)
	}
}

func (s *NotificationService) GetNotifications(ctx context.Context, recipientID int64) ([]model.Notification, error) {
	if recipientID <= 0 {
		return nil, fmt.Errorf("recipientID must be > 0: %w", ErrInvalidRequest)
	}
	out, err := s.storage.GetNotificationsByRecipient(ctx, recipientID)
	if err != nil {
		return nil, storageError("get notifications", err)
	}
	return out, nil
}

func (s *NotificationService) Listen(ctx context.Context, recipientID int64) (<-chan model.Notification, error) {
	if s.bus == nil {
		return nil, fmt.Errorf("no bus configured")
	}
	return s.bus.Subscribe(ctx, recipientID)
}
