package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bizreel/directory-api/internal/core/domain"
	"github.com/bizreel/directory-api/internal/core/ports"
)

// ListingService implements ports.ListingService.
type ListingService struct {
	videos ports.VideoRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewListingService(videos ports.VideoRepository, users ports.UserRepository, logger zerolog.Logger) *ListingService {
	return &ListingService{videos: videos, users: users, logger: logger}
}

func (s *ListingService) ListAll(ctx context.Context) ([]ports.VideoView, error) {
	return s.list(ctx, ports.VideoFilter{})
}

func (s *ListingService) ListByOwner(ctx context.Context, ownerID string) ([]ports.VideoView, error) {
	return s.list(ctx, ports.VideoFilter{OwnerID: ownerID})
}

func (s *ListingService) Get(ctx context.Context, id string) (*ports.VideoView, error) {
	video, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := &ports.VideoView{Video: video}
	owner, err := s.users.FindByID(ctx, video.UploadedBy)
	switch {
	case err == nil:
		view.Uploader = domain.UploaderOf(owner)
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}
	return view, nil
}

func (s *ListingService) Stats(ctx context.Context) (*ports.VideoStats, error) {
	counts, err := s.videos.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats := &ports.VideoStats{
		ActiveVideos:   counts[domain.VideoActive],
		PendingVideos:  counts[domain.VideoPending],
		RejectedVideos: counts[domain.VideoRejected],
		InactiveVideos: counts[domain.VideoInactive],
	}
	for _, n := range counts {
		stats.TotalVideos += n
	}
	return stats, nil
}

// OwnerCategories returns the distinct non-empty categories of the owner's
// videos, sorted case-insensitively.
func (s *ListingService) OwnerCategories(ctx context.Context, ownerID string) ([]string, error) {
	raw, err := s.videos.DistinctCategories(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		if c != "" {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i]), strings.ToLower(out[j])
		if a != b {
			return a < b
		}
		return out[i] < out[j]
	})
	return out, nil
}

// ListByOwnerAndCategory matches the stored category against every spelling
// variant of category, so legacy "_" and "-" slugs are both found.
func (s *ListingService) ListByOwnerAndCategory(ctx context.Context, ownerID, category string) ([]ports.VideoView, error) {
	candidates := domain.SlugCandidates(category)
	if len(candidates) == 0 {
		return []ports.VideoView{}, nil
	}
	return s.list(ctx, ports.VideoFilter{OwnerID: ownerID, Categories: candidates})
}

// GroupByCategory buckets the owner's videos by stored category. Each bucket
// keeps newest-first order.
func (s *ListingService) GroupByCategory(ctx context.Context, ownerID string) (map[string][]ports.VideoSummary, error) {
	videos, err := s.videos.List(ctx, ports.VideoFilter{OwnerID: ownerID})
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]ports.VideoSummary)
	for _, v := range videos {
		key := v.Category
		if key == "" {
			key = domain.UncategorizedKey
		}
		grouped[key] = append(grouped[key], toSummary(v))
	}
	return grouped, nil
}

func (s *ListingService) list(ctx context.Context, filter ports.VideoFilter) ([]ports.VideoView, error) {
	videos, err := s.videos.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return populateUploaders(ctx, s.users, videos)
}

// populateUploaders inlines each video's uploader with one batched lookup.
// Videos whose uploader no longer exists get a nil Uploader.
func populateUploaders(ctx context.Context, users ports.UserRepository, videos []*domain.Video) ([]ports.VideoView, error) {
	views := make([]ports.VideoView, 0, len(videos))
	if len(videos) == 0 {
		return views, nil
	}

	seen := make(map[string]struct{}, len(videos))
	ids := make([]string, 0, len(videos))
	for _, v := range videos {
		if _, ok := seen[v.UploadedBy]; ok {
			continue
		}
		seen[v.UploadedBy] = struct{}{}
		ids = append(ids, v.UploadedBy)
	}

	owners, err := users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Uploader, len(owners))
	for _, u := range owners {
		byID[u.ID] = domain.UploaderOf(u)
	}

	for _, v := range videos {
		views = append(views, ports.VideoView{Video: v, Uploader: byID[v.UploadedBy]})
	}
	return views, nil
}

func toSummary(v *domain.Video) ports.VideoSummary {
	return ports.VideoSummary{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Category:    v.Category,
		Path:        v.Path,
		Size:        v.Size,
		MIMEType:    v.MIMEType,
		Status:      v.Status,
		WebsiteURL:  v.WebsiteURL,
		WhatsappURL: v.WhatsappURL,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
