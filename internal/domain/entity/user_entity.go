package entity

import (
	"time"
)

// User is the aggregate root for the identity store. Emails are stored
// lowercased and unique; passwords are stored as bcrypt hashes.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
