package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bizreel/directory-api/internal/core/domain"
	"github.com/bizreel/directory-api/internal/core/ports"
)

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

// stubUserRepo keeps users in insertion order; List returns them reversed.
type stubUserRepo struct {
	users []*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateUser
		}
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("u%d", r.seq)
	r.users = append(r.users, copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		for _, id := range ids {
			if u.ID == id {
				out = append(out, cloneUser(u))
			}
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(_ context.Context, limit int) ([]*domain.User, error) {
	var out []*domain.User
	for i := len(r.users) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, cloneUser(r.users[i]))
	}
	return out, nil
}

func (r *stubUserRepo) Count(_ context.Context, role domain.Role) (int64, error) {
	var n int64
	for _, u := range r.users {
		if role == domain.RoleUnknown || u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID != id {
			continue
		}
		if patch.Name != nil {
			u.Name = *patch.Name
		}
		if patch.Phone != nil {
			u.Phone = *patch.Phone
		}
		if patch.Address != nil {
			u.Address = *patch.Address
		}
		if patch.BusinessName != nil {
			u.BusinessName = *patch.BusinessName
		}
		if patch.BusinessDescription != nil {
			u.BusinessDescription = *patch.BusinessDescription
		}
		if patch.Category != nil {
			u.Category = *patch.Category
		}
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// stubVideoRepo keeps videos in insertion order; List returns them reversed.
type stubVideoRepo struct {
	videos []*domain.Video
	seq    int
}

func newStubVideoRepo() *stubVideoRepo {
	return &stubVideoRepo{}
}

func cloneVideo(v *domain.Video) *domain.Video {
	clone := *v
	clone.Tags = append([]string(nil), v.Tags...)
	return &clone
}

func (r *stubVideoRepo) Create(_ context.Context, v *domain.Video) error {
	r.seq++
	v.ID = fmt.Sprintf("v%d", r.seq)
	r.videos = append(r.videos, cloneVideo(v))
	return nil
}

func (r *stubVideoRepo) FindByID(_ context.Context, id string) (*domain.Video, error) {
	for _, v := range r.videos {
		if v.ID == id {
			return cloneVideo(v), nil
		}
	}
	return nil, domain.ErrVideoNotFound
}

func (r *stubVideoRepo) List(_ context.Context, filter ports.VideoFilter) ([]*domain.Video, error) {
	var out []*domain.Video
	for i := len(r.videos) - 1; i >= 0; i-- {
		v := r.videos[i]
		if filter.OwnerID != "" && v.UploadedBy != filter.OwnerID {
			continue
		}
		if len(filter.Categories) > 0 && !contains(filter.Categories, v.Category) {
			continue
		}
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
		out = append(out, cloneVideo(v))
	}
	return out, nil
}

func (r *stubVideoRepo) Save(_ context.Context, v *domain.Video) error {
	for i, existing := range r.videos {
		if existing.ID == v.ID {
			r.videos[i] = cloneVideo(v)
			return nil
		}
	}
	return domain.ErrVideoNotFound
}

func (r *stubVideoRepo) Delete(_ context.Context, id string) error {
	for i, v := range r.videos {
		if v.ID == id {
			r.videos = append(r.videos[:i], r.videos[i+1:]...)
			return nil
		}
	}
	return domain.ErrVideoNotFound
}

func (r *stubVideoRepo) DeleteByOwner(_ context.Context, ownerID string) (int64, error) {
	kept := r.videos[:0]
	var removed int64
	for _, v := range r.videos {
		if v.UploadedBy == ownerID {
			removed++
			continue
		}
		kept = append(kept, v)
	}
	r.videos = kept
	return removed, nil
}

func (r *stubVideoRepo) CountByStatus(_ context.Context) (map[domain.VideoStatus]int64, error) {
	counts := make(map[domain.VideoStatus]int64)
	for _, v := range r.videos {
		counts[v.Status]++
	}
	return counts, nil
}

func (r *stubVideoRepo) Count(_ context.Context, ownerID string) (int64, error) {
	var n int64
	for _, v := range r.videos {
		if ownerID == "" || v.UploadedBy == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *stubVideoRepo) DistinctCategories(_ context.Context, ownerID string) ([]string, error) {
	var out []string
	for _, v := range r.videos {
		if v.UploadedBy == ownerID && !contains(out, v.Category) {
			out = append(out, v.Category)
		}
	}
	return out, nil
}

type stubCategoryRepo struct {
	categories []*domain.Category
	seq        int
	// taken makes Create report a collision for these slugs once, as if
	// another writer had just inserted them.
	taken map[string]bool
}

func newStubCategoryRepo(existing ...domain.Category) *stubCategoryRepo {
	r := &stubCategoryRepo{taken: make(map[string]bool)}
	for _, c := range existing {
		c := c
		r.seq++
		c.ID = fmt.Sprintf("c%d", r.seq)
		r.categories = append(r.categories, &c)
	}
	return r
}

func (r *stubCategoryRepo) Count(context.Context) (int64, error) {
	return int64(len(r.categories)), nil
}

func (r *stubCategoryRepo) InsertIfAbsent(ctx context.Context, categories []domain.Category) error {
	for _, c := range categories {
		if ok, _ := r.SlugExists(ctx, c.Slug); ok {
			continue
		}
		c := c
		r.seq++
		c.ID = fmt.Sprintf("c%d", r.seq)
		r.categories = append(r.categories, &c)
	}
	return nil
}

func (r *stubCategoryRepo) FindActiveBySlugs(_ context.Context, slugs []string) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.IsActive && contains(slugs, c.Slug) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *stubCategoryRepo) findBySlug(slug string) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *stubCategoryRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	_, err := r.findBySlug(slug)
	if errors.Is(err, domain.ErrCategoryNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *stubCategoryRepo) ListActive(context.Context) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range r.categories {
		if c.IsActive {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubCategoryRepo) ListAll(context.Context) ([]*domain.Category, error) {
	var out []*domain.Category
	for i := len(r.categories) - 1; i >= 0; i-- {
		clone := *r.categories[i]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	if r.taken[c.Slug] {
		delete(r.taken, c.Slug)
		return domain.ErrAlreadyExists
	}
	if ok, _ := r.SlugExists(ctx, c.Slug); ok {
		return domain.ErrAlreadyExists
	}
	r.seq++
	c.ID = fmt.Sprintf("c%d", r.seq)
	clone := *c
	r.categories = append(r.categories, &clone)
	return nil
}

func (r *stubCategoryRepo) Save(_ context.Context, c *domain.Category) error {
	for i, existing := range r.categories {
		if existing.ID == c.ID {
			clone := *c
			r.categories[i] = &clone
			return nil
		}
	}
	return domain.ErrCategoryNotFound
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	for i, c := range r.categories {
		if c.ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return domain.ErrCategoryNotFound
}

type stubFileStore struct {
	removed   []string
	removeErr error
}

func (f *stubFileStore) Save(context.Context, domain.UploadKind, ports.FileMeta, io.Reader) (*domain.StoredFile, error) {
	return nil, errors.New("not implemented")
}

func (f *stubFileStore) Remove(_ context.Context, path string) error {
	f.removed = append(f.removed, path)
	return f.removeErr
}

type stubGuard struct {
	claimed  bool
	released int
}

func (g *stubGuard) Claim(context.Context) (bool, error) {
	if g.claimed {
		return false, nil
	}
	g.claimed = true
	return true, nil
}

func (g *stubGuard) Release(context.Context) error {
	g.claimed = false
	g.released++
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
