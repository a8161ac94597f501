package domain

import "time"

// Role represents the user's permission level in the newsroom.
type Role string

// Newsroom roles, from most to least privileged.
const (
	// RoleAdmin grants full administrative access.
	RoleAdmin Role = "ADMIN"
	// RoleEditor may publish, schedule and archive any article.
	RoleEditor Role = "EDITOR"
	// RoleAuthor may write drafts and submit them for review.
	RoleAuthor Role = "AUTHOR"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEditor || r == RoleAuthor
}

// User represents a newsroom account.
type User struct {
	Timestamps
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	Role         Role      `json:"role"`
	Bio          string    `json:"bio,omitempty"`
	Avatar       string    `json:"avatar,omitempty"` // Avatar image URL
	LastLoginAt  time.Time `json:"last_login_at,omitzero"`
}

// IsAdmin returns true if the user has administrative privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanPublish reports whether the user may move articles in or out of the
// published states.
func (u *User) CanPublish() bool {
	return u.Role == RoleAdmin || u.Role == RoleEditor
}

// Actor is the authenticated identity attached to every mutating call.
// The credential subsystem supplies it; services trust it for permission
// checks and perform no credential verification themselves.
type Actor struct {
	UserID string
	Role   Role
}
