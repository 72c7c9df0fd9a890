package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bizreel/directory-api/internal/core/domain"
)

func newProfileFixture(t *testing.T) (*videoFixture, *ProfileService) {
	t.Helper()
	f := newVideoFixture(t)
	categories := NewCategoryService(newStubCategoryRepo(), zerolog.Nop())
	return f, NewProfileService(f.users, f.videos, categories, zerolog.Nop())
}

func TestProfileService_Dashboard(t *testing.T) {
	f, svc := newProfileFixture(t)
	for i := 0; i < 6; i++ {
		f.upload(t, f.other, "general")
	}
	f.upload(t, f.owner, "general")

	dash, err := svc.Dashboard(context.Background(), f.owner.ID)
	if err != nil {
		t.Fatalf("Dashboard returned error: %v", err)
	}
	if dash.User.ID != f.owner.ID {
		t.Fatalf("unexpected user: %+v", dash.User)
	}
	if dash.Stats.TotalUsers != 2 || dash.Stats.TotalVideos != 7 || dash.Stats.MyVideos != 1 {
		t.Fatalf("unexpected stats: %+v", dash.Stats)
	}
	if len(dash.RecentVideos) != 5 {
		t.Fatalf("expected 5 recent videos, got %d", len(dash.RecentVideos))
	}
	if len(dash.RecentUsers) != 2 {
		t.Fatalf("expected 2 recent users, got %d", len(dash.RecentUsers))
	}

	if _, err := svc.Dashboard(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestProfileService_UpdateProfile(t *testing.T) {
	f, svc := newProfileFixture(t)

	phone := ""
	category := "Real-Estate"
	user, err := svc.UpdateProfile(context.Background(), f.owner.ID, domain.UserPatch{Phone: &phone, Category: &category})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if user.Category != "real_estate" || user.Phone != "" || user.Name != "Owner" {
		t.Fatalf("unexpected user: %+v", user)
	}

	bad := "unknown"
	if _, err := svc.UpdateProfile(context.Background(), f.owner.ID, domain.UserPatch{Category: &bad}); !errors.Is(err, domain.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
	short := "A"
	if _, err := svc.UpdateProfile(context.Background(), f.owner.ID, domain.UserPatch{Name: &short}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	blank := "   "
	if _, err := svc.UpdateProfile(context.Background(), f.owner.ID, domain.UserPatch{Name: &blank}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for a blank name, got %v", err)
	}
	padded := "  Owner Two  "
	renamed, err := svc.UpdateProfile(context.Background(), f.owner.ID, domain.UserPatch{Name: &padded})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if renamed.Name != "Owner Two" {
		t.Fatalf("expected trimmed name, got %q", renamed.Name)
	}

	same, err := svc.UpdateProfile(context.Background(), f.owner.ID, domain.UserPatch{})
	if err != nil || same.ID != f.owner.ID {
		t.Fatalf("empty patch should return the profile, got %v / %v", same, err)
	}
}
