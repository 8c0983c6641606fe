package model

import "time"

// Notification tells RecipientID that SenderID replied to one of their
// comments. CommentID is the reply that produced it.
type Notification struct {
	ID          int64     `json:"id"`
	RecipientID int64     `json:"recipient"`
	SenderID    int64     `json:"sender"`
	CommentID   int64     `json:"commentId"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
}
