package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/bizreel/directory-api/internal/core/domain"
	"github.com/bizreel/directory-api/internal/core/ports"
)

// CategoryService implements ports.CategoryService.
type CategoryService struct {
	repo ports.CategoryRepository
	log  zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, log zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: log}
}

// EnsureDefaults inserts the default catalog when the store holds no
// categories at all. Concurrent callers may both see an empty store; the
// repository upserts on slug so the second pass is a no-op.
func (s *CategoryService) EnsureDefaults(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if n > 0 {
		return nil
	}

	now := time.Now().UTC()
	defaults := make([]domain.Category, 0, len(domain.DefaultCategories))
	for _, c := range domain.DefaultCategories {
		c.IsActive = true
		c.CreatedAt = now
		c.UpdatedAt = now
		defaults = append(defaults, c)
	}

	if err := s.repo.InsertIfAbsent(ctx, defaults); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	s.log.Info().Int("count", len(defaults)).Msg("default categories seeded")
	return nil
}

// Resolve maps free text to the canonical slug of an active category.
func (s *CategoryService) Resolve(ctx context.Context, input string) (*domain.Category, error) {
	if err := s.EnsureDefaults(ctx); err != nil {
		return nil, err
	}

	candidates := domain.SlugCandidates(input)
	if len(candidates) == 0 {
		return nil, domain.ErrInvalidCategory
	}

	c, err := s.repo.FindActiveBySlugs(ctx, candidates)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return nil, domain.ErrInvalidCategory
		}
		return nil, fmt.Errorf("resolve category: %w", err)
	}
	return c, nil
}

func (s *CategoryService) ListActive(ctx context.Context) ([]*domain.Category, error) {
	if err := s.EnsureDefaults(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListActive(ctx)
}

func (s *CategoryService) ListAll(ctx context.Context) ([]*domain.Category, error) {
	if err := s.EnsureDefaults(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx)
}

// Create adds a category. The slug is derived from the name once; on
// collision "-2", "-3", ... is appended until a free slug is found.
func (s *CategoryService) Create(ctx context.Context, in ports.CreateCategoryInput) (*domain.Category, error) {
	name, err := validCategoryName(in.Name)
	if err != nil {
		return nil, err
	}
	base := domain.Slugify(name)
	if base == "" {
		return nil, domain.NewValidationError("Invalid category name")
	}
	if err := s.EnsureDefaults(ctx); err != nil {
		return nil, err
	}

	candidate := base
	for suffix := 2; ; suffix++ {
		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return nil, fmt.Errorf("create category: %w", err)
		}
		if !exists {
			now := time.Now().UTC()
			c := &domain.Category{
				Name:        name,
				Slug:        candidate,
				Description: strings.TrimSpace(in.Description),
				IsActive:    true,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			err := s.repo.Create(ctx, c)
			if err == nil {
				s.log.Info().Str("slug", c.Slug).Msg("category created")
				return c, nil
			}
			// Lost a race for this slug; keep counting.
			if !errors.Is(err, domain.ErrAlreadyExists) {
				return nil, fmt.Errorf("create category: %w", err)
			}
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
}

// Update applies a partial change. The slug never changes.
func (s *CategoryService) Update(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name, err := validCategoryName(*patch.Name)
		if err != nil {
			return nil, err
		}
		c.Name = name
	}
	if patch.Description != nil {
		c.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.IsActive != nil {
		c.IsActive = *patch.IsActive
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

// Delete removes a category without checking whether users or videos still
// reference its slug.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, c.ID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	s.log.Info().Str("slug", c.Slug).Msg("category deleted")
	return nil
}

func validCategoryName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if utf8.RuneCountInString(name) < domain.MinCategoryNameLength {
		return "", domain.NewValidationError("Category name must be at least 2 characters")
	}
	return name, nil
}
