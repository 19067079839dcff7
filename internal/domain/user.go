package domain

import "time"

// User represents an authenticated account. Every other entity in the system
// is owned by exactly one user, and ownership is the sole authorization
// boundary for private data.
type User struct {
	Record
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Stored hashed, never serialized in API responses
	DisplayName  string    `json:"display_name"`
	LastLoginAt  time.Time `json:"last_login_at,omitzero"`
}

// PublicProfile is the subset of user fields safe to show to peers.
type PublicProfile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Profile returns the peer-visible projection of the user.
func (u *User) Profile() PublicProfile {
	return PublicProfile{ID: u.ID, DisplayName: u.DisplayName}
}
