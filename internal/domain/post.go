package domain

import "time"

// Post is a short text entry owned by exactly one user.
type Post struct {
	ID        string
	Content   string
	CreatorID string
	// Creator is populated on joined reads and nil otherwise.
	Creator   *User
	CreatedAt time.Time
	UpdatedAt time.Time
}
