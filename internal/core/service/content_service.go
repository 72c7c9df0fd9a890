package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bizreel/directory-api/internal/core/domain"
	"github.com/bizreel/directory-api/internal/core/ports"
)

// ContentService implements ports.ContentService.
type ContentService struct {
	videos     ports.VideoRepository
	users      ports.UserRepository
	categories ports.CategoryService
	files      ports.FileStore
	logger     zerolog.Logger
}

func NewContentService(
	videos ports.VideoRepository,
	users ports.UserRepository,
	categories ports.CategoryService,
	files ports.FileStore,
	logger zerolog.Logger,
) *ContentService {
	return &ContentService{videos: videos, users: users, categories: categories, files: files, logger: logger}
}

// Upload records a stored video file. The caller owns the file until Upload
// succeeds and must remove it on error.
func (s *ContentService) Upload(ctx context.Context, in ports.UploadVideoInput) (*ports.VideoView, error) {
	requested := in.Category
	if strings.TrimSpace(requested) == "" {
		requested = domain.DefaultVideoCategory
	}
	category, err := s.categories.Resolve(ctx, requested)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.FindByID(ctx, in.Uploader.ID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = in.File.OriginalName
	}

	now := time.Now().UTC()
	video := &domain.Video{
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		Category:     category.Slug,
		Tags:         domain.NormalizeTags(in.Tags),
		Filename:     in.File.Filename,
		OriginalName: in.File.OriginalName,
		Path:         in.File.Path,
		Size:         in.File.Size,
		MIMEType:     in.File.MIMEType,
		UploadedBy:   owner.ID,
		WebsiteURL:   strings.TrimSpace(in.WebsiteURL),
		WhatsappURL:  strings.TrimSpace(in.WhatsappURL),
		Status:       domain.VideoActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.videos.Create(ctx, video); err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}

	s.logger.Info().
		Str("video_id", video.ID).
		Str("uploaded_by", video.UploadedBy).
		Str("category", video.Category).
		Int64("size", video.Size).
		Msg("video uploaded")

	return &ports.VideoView{Video: video, Uploader: domain.UploaderOf(owner), CategoryName: category.Name}, nil
}

// Update applies a partial change on behalf of actor. Every field is
// validated before anything is written.
func (s *ContentService) Update(ctx context.Context, actor domain.Actor, id string, patch ports.VideoPatch) (*ports.VideoView, error) {
	video, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccess(actor, video.UploadedBy) {
		return nil, domain.ErrForbidden
	}

	var status domain.VideoStatus
	if patch.Status != nil {
		status, err = domain.ParseVideoStatus(*patch.Status)
		if err != nil {
			return nil, domain.NewValidationError("status must be one of: active, pending, rejected, inactive")
		}
	}
	var category *domain.Category
	if patch.Category != nil {
		category, err = s.categories.Resolve(ctx, *patch.Category)
		if err != nil {
			return nil, err
		}
	}

	if patch.Title != nil {
		video.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		video.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.WebsiteURL != nil {
		video.WebsiteURL = strings.TrimSpace(*patch.WebsiteURL)
	}
	if patch.WhatsappURL != nil {
		video.WhatsappURL = strings.TrimSpace(*patch.WhatsappURL)
	}
	if patch.Tags != nil {
		video.Tags = domain.NormalizeTags(*patch.Tags)
	}
	if patch.Status != nil {
		video.Status = status
	}
	view := &ports.VideoView{Video: video}
	if category != nil {
		video.Category = category.Slug
		view.CategoryName = category.Name
	}
	video.UpdatedAt = time.Now().UTC()

	if err := s.videos.Save(ctx, video); err != nil {
		return nil, fmt.Errorf("update video: %w", err)
	}

	owner, err := s.users.FindByID(ctx, video.UploadedBy)
	switch {
	case err == nil:
		view.Uploader = domain.UploaderOf(owner)
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}
	return view, nil
}

// Delete removes the record first; a file that cannot be removed afterwards
// is only logged.
func (s *ContentService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	video, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanAccess(actor, video.UploadedBy) {
		return domain.ErrForbidden
	}
	if err := s.videos.Delete(ctx, video.ID); err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	if err := s.files.Remove(ctx, video.Path); err != nil {
		s.logger.Warn().Err(err).Str("path", video.Path).Msg("failed to remove video file")
	}
	s.logger.Info().Str("video_id", video.ID).Str("deleted_by", actor.ID).Msg("video deleted")
	return nil
}
