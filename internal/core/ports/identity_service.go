package ports

import (
	"context"

	"github.com/omnicorp/fieldops-api/internal/core/domain"
)

// ProfileUpdate carries the fields an admin or the user themself may change.
// Zero-value fields are left untouched (merge semantics); in particular an
// empty Secret keeps the existing credential. Email is immutable post-creation
// and therefore absent here.
type ProfileUpdate struct {
	Name       string
	Role       domain.Role
	AvatarURL  string
	Department string
	Secret     string
}

// IdentityService implements authentication, registration, and staff management.
type IdentityService interface {
	// Authenticate verifies the credential pair and, on success, issues a JWT
	// and persists the session snapshot. The reserved master pair always
	// succeeds and forces an ADMIN session.
	Authenticate(ctx context.Context, email, secret string) (string, *domain.User, error)
	// Register creates a WORKER account and immediately establishes a session.
	Register(ctx context.Context, name, email, secret string) (string, *domain.User, error)
	UpdateProfile(ctx context.Context, id string, updates ProfileUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
	Logout(ctx context.Context) error
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
