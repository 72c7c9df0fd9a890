package ports

import (
	"context"

	"github.com/bizreel/directory-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts the user and returns it with its ID set. A unique-email
	// violation is reported as domain.ErrDuplicateUser.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	// List returns users newest first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]*domain.User, error)
	// Count counts users with the given role, or all users for RoleUnknown.
	Count(ctx context.Context, role domain.Role) (int64, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
