package domain

import "time"

// User represents a registered account.
type User struct {
	ID           string
	FirstName    string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
