package handler

import (
	"github.com/bizreel/directory-api/internal/core/ports"
)

// --- Request → Service input ---

func toVideoPatch(req updateVideoRequest) ports.VideoPatch {
	patch := ports.VideoPatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		WebsiteURL:  req.WebsiteURL,
		WhatsappURL: req.WhatsappURL,
		Status:      req.Status,
	}
	if req.Tags != nil {
		tags := []string(*req.Tags)
		patch.Tags = &tags
	}
	return patch
}

// --- Service result → HTTP response ---

func toVideoResponse(v ports.VideoView) videoResponse {
	tags := v.Video.Tags
	if tags == nil {
		tags = []string{}
	}
	return videoResponse{
		ID:           v.Video.ID,
		Title:        v.Video.Title,
		Description:  v.Video.Description,
		Category:     v.Video.Category,
		CategoryName: v.CategoryName,
		Tags:         tags,
		Filename:     v.Video.Filename,
		OriginalName: v.Video.OriginalName,
		Path:         v.Video.Path,
		Size:         v.Video.Size,
		MIMEType:     v.Video.MIMEType,
		UploadedBy:   v.Uploader,
		WebsiteURL:   v.Video.WebsiteURL,
		WhatsappURL:  v.Video.WhatsappURL,
		Status:       v.Video.Status,
		CreatedAt:    v.Video.CreatedAt.UTC(),
		UpdatedAt:    v.Video.UpdatedAt.UTC(),
	}
}

func toVideoListResponse(views []ports.VideoView) []videoResponse {
	out := make([]videoResponse, len(views))
	for i, v := range views {
		out[i] = toVideoResponse(v)
	}
	return out
}
