package ports

import (
	"context"

	"github.com/bizreel/directory-api/internal/core/domain"
)

// DashboardStats are the headline numbers on the dashboard.
type DashboardStats struct {
	TotalUsers  int64 `json:"totalUsers"`
	TotalVideos int64 `json:"totalVideos"`
	MyVideos    int64 `json:"myVideos"`
}

// Dashboard is the signed-in user's landing view.
type Dashboard struct {
	User         *domain.User
	Stats        DashboardStats
	RecentVideos []VideoSummary
	RecentUsers  []RecentUser
}

// ProfileService serves the signed-in user's own account.
type ProfileService interface {
	Dashboard(ctx context.Context, userID string) (*Dashboard, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, patch domain.UserPatch) (*domain.User, error)
}
