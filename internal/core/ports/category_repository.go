package ports

import (
	"context"

	"github.com/bizreel/directory-api/internal/core/domain"
)

// CategoryRepository defines persistence operations for the category catalog.
type CategoryRepository interface {
	Count(ctx context.Context) (int64, error)
	// InsertIfAbsent upserts each category keyed on its slug without touching
	// categories that already exist. Safe to run concurrently.
	InsertIfAbsent(ctx context.Context, categories []domain.Category) error
	// FindActiveBySlugs returns the first active category whose slug is one of
	// slugs, or domain.ErrCategoryNotFound.
	FindActiveBySlugs(ctx context.Context, slugs []string) (*domain.Category, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	// ListActive returns active categories by name; ListAll returns every
	// category newest first.
	ListActive(ctx context.Context) ([]*domain.Category, error)
	ListAll(ctx context.Context) ([]*domain.Category, error)
	// Create inserts c and sets c.ID. A slug collision is reported as
	// domain.ErrAlreadyExists.
	Create(ctx context.Context, c *domain.Category) error
	Save(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id string) error
}
