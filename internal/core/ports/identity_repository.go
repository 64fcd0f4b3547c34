package ports

import (
	"context"

	"github.com/omnicorp/fieldops-api/internal/core/domain"
)

// IdentityRepository defines persistence operations for user records.
type IdentityRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	// Count reports the number of stored users; used to decide whether the
	// built-in default records should be seeded at startup.
	Count(ctx context.Context) (int64, error)
}
