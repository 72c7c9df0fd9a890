package ports

import (
	"context"
	"time"

	"github.com/bizreel/directory-api/internal/core/domain"
)

// RegisterInput carries the registration form. Logo, when non-nil, is a logo
// file that has already passed its upload policy and been stored.
type RegisterInput struct {
	Name                string
	BusinessName        string
	Email               string
	Password            string
	Phone               string
	Address             string
	BusinessDescription string
	Category            string
	Logo                *domain.StoredFile
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AdminCredentials reports the identity created by the bootstrap route.
type AdminCredentials struct {
	Email string
}

// RecentUser is the compact user view used in statistics.
type RecentUser struct {
	ID        string      `json:"_id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

// UserStats aggregates account counts.
type UserStats struct {
	TotalUsers   int64        `json:"totalUsers"`
	AdminUsers   int64        `json:"adminUsers"`
	RegularUsers int64        `json:"regularUsers"`
	RecentUsers  []RecentUser `json:"recentUsers"`
}

// AuthService covers account registration, login and account administration.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	CreateAdmin(ctx context.Context, setupToken string) (*AdminCredentials, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UserStats(ctx context.Context) (*UserStats, error)
	DeleteUser(ctx context.Context, id string) error
}
