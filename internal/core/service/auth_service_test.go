package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bizreel/directory-api/internal/core/domain"
	"github.com/bizreel/directory-api/internal/core/ports"
)

type authFixture struct {
	users  *stubUserRepo
	videos *stubVideoRepo
	files  *stubFileStore
	guard  *stubGuard
	svc    *AuthService
}

func newAuthFixture(admin AdminBootstrap) *authFixture {
	f := &authFixture{
		users:  newStubUserRepo(),
		videos: newStubVideoRepo(),
		files:  &stubFileStore{},
		guard:  &stubGuard{},
	}
	categories := NewCategoryService(newStubCategoryRepo(), zerolog.Nop())
	cfg := AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour, Admin: admin}
	f.svc = NewAuthService(f.users, f.videos, categories, f.files, f.guard, cfg, zerolog.Nop())
	return f
}

func validRegistration() ports.RegisterInput {
	return ports.RegisterInput{
		Name:         "Alice",
		BusinessName: "Alice Bakes",
		Email:        "  Alice@Example.com ",
		Password:     "pass123",
		Phone:        "555-0100",
		Category:     "real-estate",
	}
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	return claims
}

func TestAuthService_Register_Success(t *testing.T) {
	f := newAuthFixture(AdminBootstrap{})

	in := validRegistration()
	in.Logo = &domain.StoredFile{Kind: domain.UploadLogo, Path: "/uploads/logos/abc.png"}
	res, err := f.svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	user := res.User
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Category != "real_estate" {
		t.Fatalf("expected canonical category real_estate, got %q", user.Category)
	}
	if user.Role != domain.RoleUser || !user.IsActive {
		t.Fatalf("unexpected role/active: %v/%v", user.Role, user.IsActive)
	}
	if user.Logo != "/uploads/logos/abc.png" {
		t.Fatalf("unexpected logo: %q", user.Logo)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	claims := parseClaims(t, res.Token)
	if claims["userId"] != user.ID || claims["email"] != "alice@example.com" || claims["role"] != "user" {
		t.Fatalf("unexpected claims: %v", claims)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	f := newAuthFixture(AdminBootstrap{})

	in := validRegistration()
	in.Password = "12345"
	if _, err := f.svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for short password, got %v", err)
	}

	in = validRegistration()
	in.Category = "underwater-basket-weaving"
	if _, err := f.svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
	if len(f.users.users) != 0 {
		t.Fatalf("expected no user to be stored")
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	f := newAuthFixture(AdminBootstrap{})

	if _, err := f.svc.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	again := validRegistration()
	again.Email = "ALICE@example.com"
	if _, err := f.svc.Register(context.Background(), again); !errors.Is(err, domain.ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture(AdminBootstrap{})
	if _, err := f.svc.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := f.svc.Login(context.Background(), "ALICE@example.com", "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" || res.User.Name != "Alice" {
		t.Fatalf("unexpected login result: %+v", res)
	}

	claims := parseClaims(t, res.Token)
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("expected exp claim: %v", err)
	}
	if d := time.Until(exp.Time); d <= 0 || d > time.Hour+time.Minute {
		t.Fatalf("unexpected token lifetime: %v", d)
	}
}

func TestAuthService_Login_Failures(t *testing.T) {
	f := newAuthFixture(AdminBootstrap{})
	if _, err := f.svc.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := f.svc.Login(context.Background(), "nobody@example.com", "pass123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if _, err := f.svc.Login(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}

	f.users.users[0].IsActive = false
	if _, err := f.svc.Login(context.Background(), "alice@example.com", "pass123"); !errors.Is(err, domain.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
	// A wrong password on a disabled account still reads as bad credentials.
	if _, err := f.svc.Login(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_CreateAdmin(t *testing.T) {
	f := newAuthFixture(AdminBootstrap{SetupToken: "let-me-in"})

	if _, err := f.svc.CreateAdmin(context.Background(), "wrong"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for bad token, got %v", err)
	}

	creds, err := f.svc.CreateAdmin(context.Background(), "let-me-in")
	if err != nil {
		t.Fatalf("CreateAdmin returned error: %v", err)
	}
	if creds.Email != "admin@admin.com" {
		t.Fatalf("unexpected admin email: %q", creds.Email)
	}
	admin, err := f.users.FindByEmail(context.Background(), "admin@admin.com")
	if err != nil {
		t.Fatalf("admin not stored: %v", err)
	}
	if admin.Role != domain.RoleAdmin || !admin.IsActive {
		t.Fatalf("unexpected admin: %+v", admin)
	}

	if _, err := f.svc.CreateAdmin(context.Background(), "let-me-in"); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists on second call, got %v", err)
	}

	res, err := f.svc.Login(context.Background(), "admin@admin.com", "admin123")
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	if parseClaims(t, res.Token)["role"] != "admin" {
		t.Fatalf("expected admin role claim")
	}
}

func TestAuthService_CreateAdmin_Disabled(t *testing.T) {
	f := newAuthFixture(AdminBootstrap{})

	if _, err := f.svc.CreateAdmin(context.Background(), ""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden when no setup token is configured, got %v", err)
	}
	if len(f.users.users) != 0 {
		t.Fatalf("expected no admin to be created")
	}
}

func TestAuthService_CreateAdmin_GuardHeld(t *testing.T) {
	f := newAuthFixture(AdminBootstrap{SetupToken: "tok"})
	f.guard.claimed = true

	if _, err := f.svc.CreateAdmin(context.Background(), "tok"); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists while setup is claimed, got %v", err)
	}
}

func TestAuthService_UserStats(t *testing.T) {
	f := newAuthFixture(AdminBootstrap{SetupToken: "tok"})
	ctx := context.Background()

	for _, email := range []string{"a@x.io", "b@x.io", "c@x.io", "d@x.io", "e@x.io", "f@x.io"} {
		in := validRegistration()
		in.Email = email
		if _, err := f.svc.Register(ctx, in); err != nil {
			t.Fatalf("register %s failed: %v", email, err)
		}
	}
	if _, err := f.svc.CreateAdmin(ctx, "tok"); err != nil {
		t.Fatalf("CreateAdmin failed: %v", err)
	}

	stats, err := f.svc.UserStats(ctx)
	if err != nil {
		t.Fatalf("UserStats returned error: %v", err)
	}
	if stats.TotalUsers != 7 || stats.AdminUsers != 1 || stats.RegularUsers != 6 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if len(stats.RecentUsers) != 5 {
		t.Fatalf("expected 5 recent users, got %d", len(stats.RecentUsers))
	}
	if stats.RecentUsers[0].Email != "admin@admin.com" {
		t.Fatalf("expected newest user first, got %q", stats.RecentUsers[0].Email)
	}
}

func TestAuthService_DeleteUser_Cascades(t *testing.T) {
	f := newAuthFixture(AdminBootstrap{})
	ctx := context.Background()

	in := validRegistration()
	in.Logo = &domain.StoredFile{Path: "/uploads/logos/l.png"}
	alice, err := f.svc.Register(ctx, in)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	bobIn := validRegistration()
	bobIn.Email = "bob@example.com"
	bob, err := f.svc.Register(ctx, bobIn)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_ = f.videos.Create(ctx, &domain.Video{UploadedBy: alice.User.ID, Path: "/uploads/videos/a1.mp4"})
	_ = f.videos.Create(ctx, &domain.Video{UploadedBy: alice.User.ID, Path: "/uploads/videos/a2.mp4"})
	_ = f.videos.Create(ctx, &domain.Video{UploadedBy: bob.User.ID, Path: "/uploads/videos/b1.mp4"})

	if err := f.svc.DeleteUser(ctx, alice.User.ID); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}
	if _, err := f.users.FindByID(ctx, alice.User.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user to be gone, got %v", err)
	}
	if len(f.videos.videos) != 1 || f.videos.videos[0].UploadedBy != bob.User.ID {
		t.Fatalf("expected only bob's video to remain, got %+v", f.videos.videos)
	}
	if len(f.files.removed) != 3 {
		t.Fatalf("expected 3 files removed, got %v", f.files.removed)
	}

	if err := f.svc.DeleteUser(ctx, "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_DeleteUser_FileErrorsIgnored(t *testing.T) {
	f := newAuthFixture(AdminBootstrap{})
	f.files.removeErr = errors.New("disk gone")
	ctx := context.Background()

	res, err := f.svc.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_ = f.videos.Create(ctx, &domain.Video{UploadedBy: res.User.ID, Path: "/uploads/videos/x.mp4"})

	if err := f.svc.DeleteUser(ctx, res.User.ID); err != nil {
		t.Fatalf("expected file cleanup failure to be ignored, got %v", err)
	}
}
