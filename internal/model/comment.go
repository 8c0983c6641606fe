package model

import "time"

type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	UserID    int64     `json:"userId"`
	ParentID  *int64    `json:"parentComment"`
	Text      string    `json:"text"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsRoot reports whether the comment starts a reply thread.
func (c Comment) IsRoot() bool {
	return c.ParentID == nil
}
