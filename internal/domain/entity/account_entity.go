package entity

import (
	"time"
)

// Account is the aggregate root for the identity domain
// Passwords are stored as bcrypt hashes in PasswordHash and never leave
// the service; outward reads go through application.Profile.
//
// Email and Role are immutable after creation.
type Account struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string
	Role           Role
	Phone          string
	Organization   string
	ProfilePicture string
	IsVerified     bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
