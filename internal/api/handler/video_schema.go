package handler

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/bizreel/directory-api/internal/core/domain"
)

// --- Request / Response types ---

// uploadVideoRequest binds the multipart fields. Tags may repeat, and each
// value may itself be comma-separated.
type uploadVideoRequest struct {
	Title       string   `form:"title"`
	Description string   `form:"description"`
	Category    string   `form:"category"`
	Tags        []string `form:"tags"`
	WebsiteURL  string   `form:"websiteUrl"`
	WhatsappURL string   `form:"whatsappUrl"`
}

func (r uploadVideoRequest) tags() []string {
	return domain.SplitTags(strings.Join(r.Tags, ","))
}

type updateVideoRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Tags        *tagList `json:"tags"`
	WebsiteURL  *string  `json:"websiteUrl"`
	WhatsappURL *string  `json:"whatsappUrl"`
	Status      *string  `json:"status"`
}

// tagList accepts either a JSON array of tags or a comma-separated string.
type tagList []string

func (t *tagList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*t = domain.NormalizeTags(list)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.New("tags must be a string or an array of strings")
	}
	*t = domain.SplitTags(s)
	return nil
}

type videoResponse struct {
	ID           string             `json:"_id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Category     string             `json:"category"`
	CategoryName string             `json:"categoryName,omitempty"`
	Tags         []string           `json:"tags"`
	Filename     string             `json:"filename"`
	OriginalName string             `json:"originalName"`
	Path         string             `json:"path"`
	Size         int64              `json:"size"`
	MIMEType     string             `json:"mimetype"`
	UploadedBy   *domain.Uploader   `json:"uploadedBy"`
	WebsiteURL   string             `json:"websiteUrl"`
	WhatsappURL  string             `json:"whatsappUrl"`
	Status       domain.VideoStatus `json:"status"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}
