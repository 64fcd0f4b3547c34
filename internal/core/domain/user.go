package domain

import (
	"errors"
	"time"
)

// Role is the access level assigned to a user.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleWorker  Role = "WORKER"
	RoleAuditor Role = "AUDITOR"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleWorker, RoleAuditor:
		return true
	}
	return false
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrForbidden = errors.New("access forbidden")

// User models a registered actor: a technician, administrator, or auditor.
// SecretHash is a bcrypt hash; a user with no hash set authenticates
// unconditionally (legacy-account mode).
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	AvatarURL  string    `json:"avatar_url"`
	SecretHash string    `json:"-"`
	Department string    `json:"department,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// HasSecret reports whether the user has a credential secret on record.
func (u *User) HasSecret() bool {
	return u.SecretHash != ""
}
