package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestRole_TextRoundTrip(t *testing.T) {
	for _, r := range []Role{RoleUser, RoleAdmin} {
		b, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("marshal %v: %v", r, err)
		}
		var back Role
		if err := json.Unmarshal(b, &back); err != nil || back != r {
			t.Fatalf("round trip of %s gave %v, %v", b, back, err)
		}
	}
	if _, err := json.Marshal(RoleUnknown); err == nil {
		t.Fatalf("expected error marshalling unknown role")
	}
	if _, err := ParseRole("root"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestUser_JSONOmitsPasswordHash(t *testing.T) {
	b, err := json.Marshal(User{ID: "1", Email: "a@b.co", PasswordHash: "secret-hash", Role: RoleUser})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	if _, ok := m["PasswordHash"]; ok {
		t.Fatalf("password hash leaked: %s", b)
	}
	if m["_id"] != "1" || m["role"] != "user" {
		t.Fatalf("unexpected json: %s", b)
	}
}

func TestCanAccess(t *testing.T) {
	cases := []struct {
		actor Actor
		owner string
		want  bool
	}{
		{Actor{ID: "a", Role: RoleUser}, "a", true},
		{Actor{ID: "a", Role: RoleUser}, "b", false},
		{Actor{ID: "x", Role: RoleAdmin}, "b", true},
		{Actor{ID: "", Role: RoleUser}, "", false},
		{Actor{ID: "a", Role: RoleUnknown}, "b", false},
	}
	for _, tc := range cases {
		if got := CanAccess(tc.actor, tc.owner); got != tc.want {
			t.Fatalf("CanAccess(%+v, %q) = %v, want %v", tc.actor, tc.owner, got, tc.want)
		}
	}
}

func TestDetailedError(t *testing.T) {
	err := NewValidationError("email is invalid")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation")
	}
	var de *DetailedError
	if !errors.As(err, &de) || len(de.Details) != 1 {
		t.Fatalf("expected details, got %v", err)
	}
	if !errors.Is(RejectUpload("File too large"), ErrUploadRejected) {
		t.Fatalf("expected ErrUploadRejected")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Bob@Example.COM "); got != "bob@example.com" {
		t.Fatalf("unexpected email: %q", got)
	}
}
