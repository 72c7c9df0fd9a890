package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/bizreel/directory-api/internal/core/domain"
	"github.com/bizreel/directory-api/internal/core/ports"
)

const (
	recentVideosLimit = 5
	minNameLength     = 2
)

// ProfileService implements ports.ProfileService.
type ProfileService struct {
	users      ports.UserRepository
	videos     ports.VideoRepository
	categories ports.CategoryService
	logger     zerolog.Logger
}

func NewProfileService(
	users ports.UserRepository,
	videos ports.VideoRepository,
	categories ports.CategoryService,
	logger zerolog.Logger,
) *ProfileService {
	return &ProfileService{users: users, videos: videos, categories: categories, logger: logger}
}

func (s *ProfileService) Dashboard(ctx context.Context, userID string) (*ports.Dashboard, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.users.Count(ctx, domain.RoleUnknown)
	if err != nil {
		return nil, err
	}
	totalVideos, err := s.videos.Count(ctx, "")
	if err != nil {
		return nil, err
	}
	mine, err := s.videos.Count(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	recentVideos, err := s.videos.List(ctx, ports.VideoFilter{Limit: recentVideosLimit})
	if err != nil {
		return nil, err
	}
	summaries := make([]ports.VideoSummary, 0, len(recentVideos))
	for _, v := range recentVideos {
		summaries = append(summaries, toSummary(v))
	}

	recentUsers, err := s.users.List(ctx, recentUsersLimit)
	if err != nil {
		return nil, err
	}

	return &ports.Dashboard{
		User: user,
		Stats: ports.DashboardStats{
			TotalUsers:  totalUsers,
			TotalVideos: totalVideos,
			MyVideos:    mine,
		},
		RecentVideos: summaries,
		RecentUsers:  toRecentUsers(recentUsers),
	}, nil
}

func (s *ProfileService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile writes the non-nil fields of patch. A changed category goes
// through the resolver and is stored in canonical form.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, patch domain.UserPatch) (*domain.User, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if utf8.RuneCountInString(name) < minNameLength {
			return nil, domain.NewValidationError("Name must be at least 2 characters")
		}
		patch.Name = &name
	}
	if patch.Category != nil {
		category, err := s.categories.Resolve(ctx, *patch.Category)
		if err != nil {
			return nil, err
		}
		patch.Category = &category.Slug
	}
	if patch.Empty() {
		return s.users.FindByID(ctx, userID)
	}

	user, err := s.users.Update(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", user.ID).Msg("profile updated")
	return user, nil
}
