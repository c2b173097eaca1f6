package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents the user entity in the database.
//
// PasswordConfigured distinguishes a password chosen by a human from the
// random placeholder hash assigned to accounts created through an OAuth
// provider. It only ever flips to true when the user explicitly sets a
// password (registration or password setup).
type User struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	Email              string    `json:"email" db:"email"`
	Name               string    `json:"name" db:"name"`
	PasswordHash       string    `json:"-" db:"password_hash"`
	PasswordConfigured bool      `json:"-" db:"password_configured"`
	AvatarURL          string    `json:"avatar_url,omitempty" db:"avatar_url"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// UserResponse structures the user data returned by API endpoints.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
}

// ToResponse converts a User model to an API UserResponse.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
}
