package model

import "time"

const RoleUser = "user"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is what a verified credential resolves to.
type Identity struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}
