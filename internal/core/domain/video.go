package domain

import (
	"fmt"
	"strings"
	"time"
)

// VideoStatus represents the moderation state of a video.
type VideoStatus string

const (
	VideoActive   VideoStatus = "active"
	VideoPending  VideoStatus = "pending"
	VideoRejected VideoStatus = "rejected"
	VideoInactive VideoStatus = "inactive"
)

// VideoStatuses lists every valid status in reporting order.
var VideoStatuses = []VideoStatus{VideoActive, VideoPending, VideoRejected, VideoInactive}

// ParseVideoStatus validates a client-supplied status.
func ParseVideoStatus(s string) (VideoStatus, error) {
	for _, st := range VideoStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown video status %q", s)
}

// UncategorizedKey buckets videos without a category in grouped listings.
const UncategorizedKey = "uncategorized"

// DefaultVideoCategory is used when an upload names no category.
const DefaultVideoCategory = "general"

// Video is a promotional clip owned by a user.
type Video struct {
	ID           string      `json:"_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Category     string      `json:"category"`
	Tags         []string    `json:"tags"`
	Filename     string      `json:"filename"`
	OriginalName string      `json:"originalName"`
	Path         string      `json:"path"`
	Size         int64       `json:"size"`
	MIMEType     string      `json:"mimetype"`
	UploadedBy   string      `json:"uploadedBy"`
	WebsiteURL   string      `json:"websiteUrl"`
	WhatsappURL  string      `json:"whatsappUrl"`
	Status       VideoStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Uploader is the slice of a User that is inlined into video responses.
type Uploader struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	BusinessName string `json:"businessName"`
	Email        string `json:"email"`
	Logo         string `json:"logo"`
}

// UploaderOf projects a user into its inlined form.
func UploaderOf(u *User) *Uploader {
	if u == nil {
		return nil
	}
	return &Uploader{
		ID:           u.ID,
		Name:         u.Name,
		BusinessName: u.BusinessName,
		Email:        u.Email,
		Logo:         u.Logo,
	}
}

// NormalizeTags trims every tag, drops empties and keeps the first occurrence
// of each value.
func NormalizeTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// SplitTags parses a comma-separated tag string.
func SplitTags(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}
