package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bizreel/directory-api/internal/core/domain"
	"github.com/bizreel/directory-api/internal/core/ports"
)

const recentUsersLimit = 5

// AdminBootstrap configures the one-time admin creation route. An empty
// SetupToken disables the route.
type AdminBootstrap struct {
	SetupToken string
	Name       string
	Email      string
	Password   string
}

// AuthConfig groups the token and bootstrap settings of AuthService.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	Admin     AdminBootstrap
}

// AuthService implements registration, login and account administration.
type AuthService struct {
	users      ports.UserRepository
	videos     ports.VideoRepository
	categories ports.CategoryService
	files      ports.FileStore
	guard      ports.SetupGuard
	cfg        AuthConfig
	log        zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	videos ports.VideoRepository,
	categories ports.CategoryService,
	files ports.FileStore,
	guard ports.SetupGuard,
	cfg AuthConfig,
	log zerolog.Logger,
) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.Admin.Name == "" {
		cfg.Admin.Name = "Admin"
	}
	if cfg.Admin.Email == "" {
		cfg.Admin.Email = "admin@admin.com"
	}
	if cfg.Admin.Password == "" {
		cfg.Admin.Password = "admin123"
	}
	return &AuthService{
		users:      users,
		videos:     videos,
		categories: categories,
		files:      files,
		guard:      guard,
		cfg:        cfg,
		log:        log,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if len(in.Password) < domain.MinPasswordLength {
		return nil, domain.NewValidationError("Password must be at least 6 characters")
	}

	category, err := s.categories.Resolve(ctx, in.Category)
	if err != nil {
		return nil, err
	}

	email := domain.NormalizeEmail(in.Email)
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateUser
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:                strings.TrimSpace(in.Name),
		BusinessName:        strings.TrimSpace(in.BusinessName),
		Email:               email,
		PasswordHash:        string(hash),
		Phone:               strings.TrimSpace(in.Phone),
		Address:             strings.TrimSpace(in.Address),
		BusinessDescription: strings.TrimSpace(in.BusinessDescription),
		Category:            category.Slug,
		IsActive:            true,
		Role:                domain.RoleUser,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if in.Logo != nil {
		user.Logo = in.Logo.Path
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", created.ID).Str("category", created.Category).Msg("user registered")
	return &ports.AuthResult{Token: token, User: created}, nil
}

// Login never reveals whether the email exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

// CreateAdmin provisions the configured admin account once. The caller must
// present the configured setup token.
func (s *AuthService) CreateAdmin(ctx context.Context, setupToken string) (*ports.AdminCredentials, error) {
	expected := s.cfg.Admin.SetupToken
	if expected == "" || subtle.ConstantTimeCompare([]byte(setupToken), []byte(expected)) != 1 {
		return nil, domain.ErrForbidden
	}

	email := domain.NormalizeEmail(s.cfg.Admin.Email)
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup admin: %w", err)
	}

	claimed, err := s.guard.Claim(ctx)
	if err != nil {
		return nil, fmt.Errorf("claim admin setup: %w", err)
	}
	if !claimed {
		return nil, domain.ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		s.releaseGuard(ctx)
		return nil, err
	}

	now := time.Now().UTC()
	admin := &domain.User{
		Name:         s.cfg.Admin.Name,
		BusinessName: s.cfg.Admin.Name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        "0000000000",
		Category:     domain.DefaultVideoCategory,
		IsActive:     true,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.users.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			return nil, domain.ErrAlreadyExists
		}
		s.releaseGuard(ctx)
		return nil, err
	}

	s.log.Info().Str("email", email).Msg("admin account created")
	return &ports.AdminCredentials{Email: email}, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx, 0)
}

func (s *AuthService) UserStats(ctx context.Context) (*ports.UserStats, error) {
	total, err := s.users.Count(ctx, domain.RoleUnknown)
	if err != nil {
		return nil, err
	}
	admins, err := s.users.Count(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	regular, err := s.users.Count(ctx, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	recent, err := s.users.List(ctx, recentUsersLimit)
	if err != nil {
		return nil, err
	}

	return &ports.UserStats{
		TotalUsers:   total,
		AdminUsers:   admins,
		RegularUsers: regular,
		RecentUsers:  toRecentUsers(recent),
	}, nil
}

// DeleteUser removes the account and every video it owns, then best-effort
// deletes the stored files.
func (s *AuthService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	owned, err := s.videos.List(ctx, ports.VideoFilter{OwnerID: user.ID})
	if err != nil {
		return fmt.Errorf("list owned videos: %w", err)
	}
	removed, err := s.videos.DeleteByOwner(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("delete owned videos: %w", err)
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}

	paths := make([]string, 0, len(owned)+1)
	for _, v := range owned {
		paths = append(paths, v.Path)
	}
	if user.Logo != "" {
		paths = append(paths, user.Logo)
	}
	for _, p := range paths {
		if err := s.files.Remove(ctx, p); err != nil {
			s.log.Warn().Err(err).Str("path", p).Msg("failed to remove stored file")
		}
	}

	s.log.Info().Str("user_id", user.ID).Int64("videos_deleted", removed).Msg("user deleted")
	return nil
}

func (s *AuthService) releaseGuard(ctx context.Context) {
	if err := s.guard.Release(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to release admin setup claim")
	}
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"role":   user.Role.String(),
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(s.cfg.TokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.JWTSecret))
}

func toRecentUsers(users []*domain.User) []ports.RecentUser {
	out := make([]ports.RecentUser, 0, len(users))
	for _, u := range users {
		out = append(out, ports.RecentUser{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
	}
	return out
}
