package ports

import (
	"context"

	"github.com/bizreel/directory-api/internal/core/domain"
)

// VideoFilter narrows a video listing. Zero values mean "no filter".
type VideoFilter struct {
	OwnerID    string
	Categories []string // stored category must equal one of these
	Limit      int
}

// VideoRepository defines persistence operations for videos.
type VideoRepository interface {
	// Create inserts v and sets v.ID.
	Create(ctx context.Context, v *domain.Video) error
	FindByID(ctx context.Context, id string) (*domain.Video, error)
	// List returns matching videos newest first.
	List(ctx context.Context, filter VideoFilter) ([]*domain.Video, error)
	// Save overwrites the mutable fields of an existing video.
	Save(ctx context.Context, v *domain.Video) error
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
	// CountByStatus returns the number of videos per status. Statuses with no
	// videos may be absent from the map.
	CountByStatus(ctx context.Context) (map[domain.VideoStatus]int64, error)
	Count(ctx context.Context, ownerID string) (int64, error)
	DistinctCategories(ctx context.Context, ownerID string) ([]string, error)
}
