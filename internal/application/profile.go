package application

import (
	"time"

	"github.com/abdulrafayKhan-10/EventSphere-Management-System/internal/domain/entity"
)

// Profile is the outward-facing projection of an account. It is the only
// shape any operation returns, including the admin listing, so the
// password hash can never leak through a response.
type Profile struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Role           entity.Role `json:"role"`
	Phone          string      `json:"phone,omitempty"`
	Organization   string      `json:"organization,omitempty"`
	ProfilePicture string      `json:"profile_picture,omitempty"`
	IsVerified     bool        `json:"is_verified"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// NewProfile scrubs an account down to its safe projection.
func NewProfile(a *entity.Account) Profile {
	return Profile{
		ID:             a.ID,
		Name:           a.Name,
		Email:          a.Email,
		Role:           a.Role,
		Phone:          a.Phone,
		Organization:   a.Organization,
		ProfilePicture: a.ProfilePicture,
		IsVerified:     a.IsVerified,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
