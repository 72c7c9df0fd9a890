package ports

import (
	"context"
	"time"

	"github.com/bizreel/directory-api/internal/core/domain"
)

// UploadVideoInput carries an upload whose file is already stored.
type UploadVideoInput struct {
	Uploader    domain.Actor
	File        domain.StoredFile
	Title       string
	Description string
	Category    string
	Tags        []string
	WebsiteURL  string
	WhatsappURL string
}

// VideoPatch is a partial update: nil fields are left untouched, non-nil
// fields are written even when empty.
type VideoPatch struct {
	Title       *string
	Description *string
	Category    *string
	Tags        *[]string
	WebsiteURL  *string
	WhatsappURL *string
	Status      *string
}

// VideoView is a video with its uploader inlined.
type VideoView struct {
	Video        *domain.Video
	Uploader     *domain.Uploader
	CategoryName string
}

// VideoSummary is the reduced projection used by the grouped listing. It
// carries no uploader.
type VideoSummary struct {
	ID          string             `json:"_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Path        string             `json:"path"`
	Size        int64              `json:"size"`
	MIMEType    string             `json:"mimetype"`
	Status      domain.VideoStatus `json:"status"`
	WebsiteURL  string             `json:"websiteUrl"`
	WhatsappURL string             `json:"whatsappUrl"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// VideoStats counts videos per status.
type VideoStats struct {
	TotalVideos    int64 `json:"totalVideos"`
	ActiveVideos   int64 `json:"activeVideos"`
	PendingVideos  int64 `json:"pendingVideos"`
	RejectedVideos int64 `json:"rejectedVideos"`
	InactiveVideos int64 `json:"inactiveVideos"`
}

// ContentService handles writes to the video catalogue.
type ContentService interface {
	Upload(ctx context.Context, in UploadVideoInput) (*VideoView, error)
	Update(ctx context.Context, actor domain.Actor, id string, patch VideoPatch) (*VideoView, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

// ListingService handles read-only video queries.
type ListingService interface {
	ListAll(ctx context.Context) ([]VideoView, error)
	ListByOwner(ctx context.Context, ownerID string) ([]VideoView, error)
	Get(ctx context.Context, id string) (*VideoView, error)
	Stats(ctx context.Context) (*VideoStats, error)
	OwnerCategories(ctx context.Context, ownerID string) ([]string, error)
	ListByOwnerAndCategory(ctx context.Context, ownerID, category string) ([]VideoView, error)
	GroupByCategory(ctx context.Context, ownerID string) (map[string][]VideoSummary, error)
}
