package ports

import (
	"context"

	"github.com/bizreel/directory-api/internal/core/domain"
)

// CreateCategoryInput carries the admin create form.
type CreateCategoryInput struct {
	Name        string
	Description string
}

// CategoryService owns the catalog: seeding, resolution and admin CRUD.
type CategoryService interface {
	// EnsureDefaults seeds the default catalog when the store is empty.
	EnsureDefaults(ctx context.Context) error
	// Resolve maps free text to an active category, tolerating "_"/"-"
	// spelling differences. Fails with domain.ErrInvalidCategory.
	Resolve(ctx context.Context, input string) (*domain.Category, error)
	ListActive(ctx context.Context) ([]*domain.Category, error)
	ListAll(ctx context.Context) ([]*domain.Category, error)
	Create(ctx context.Context, in CreateCategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}
