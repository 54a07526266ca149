package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password always holds a bcrypt hash once persisted, never plaintext.
type User struct {
	ID        string
	Fullname  string
	Username  string
	Email     string
	Password  string
	Bio       string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile is the sanitized projection exposed by the API.
// It never carries the password hash.
type Profile struct {
	ID        string    `json:"id"`
	Fullname  string    `json:"fullname"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio,omitempty"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile strips the sensitive fields from a user record.
func (u *User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Fullname:  u.Fullname,
		Username:  u.Username,
		Email:     u.Email,
		Bio:       u.Bio,
		Image:     u.Image,
		CreatedAt: u.CreatedAt,
	}
}
