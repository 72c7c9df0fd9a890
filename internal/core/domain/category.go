package domain

import (
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// MinCategoryNameLength applies to the trimmed name on create and rename.
const MinCategoryNameLength = 2

// Category is an entry of the business/video category catalog.
type Category struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryPatch is a partial update. Slug is deliberately absent: it is fixed
// at creation.
type CategoryPatch struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// DefaultCategories is the catalog inserted into an empty store.
var DefaultCategories = []Category{
	{Name: "General", Slug: "general"},
	{Name: "Retail Store", Slug: "retail"},
	{Name: "Restaurant & Cafe", Slug: "restaurant"},
	{Name: "Healthcare", Slug: "healthcare"},
	{Name: "Education", Slug: "education"},
	{Name: "Real Estate", Slug: "real_estate"},
	{Name: "Automotive", Slug: "automotive"},
	{Name: "Technology", Slug: "technology"},
	{Name: "Fashion & Apparel", Slug: "fashion"},
	{Name: "Beauty & Spa", Slug: "beauty"},
	{Name: "Fitness & Gym", Slug: "fitness"},
	{Name: "Entertainment", Slug: "entertainment"},
	{Name: "Manufacturing", Slug: "manufacturing"},
	{Name: "Logistics & Transport", Slug: "logistics"},
	{Name: "Consulting", Slug: "consulting"},
	{Name: "Other", Slug: "other"},
}

var slugPrep = strings.NewReplacer("'", "", `"`, "", "_", " ", "&", " ", "@", " ")

// Slugify derives a category slug from a display name: lowercase ASCII
// letters and digits separated by single hyphens, no hyphen at either end.
// Quotes are dropped rather than turned into separators; "&" and "@" are
// separators, never spelled out as words.
func Slugify(name string) string {
	return slug.Make(slugPrep.Replace(strings.TrimSpace(name)))
}

// SlugCandidates expands a free-text category into the spellings it may be
// stored under: trimmed and lower-cased, with "_" and "-" swapped both ways.
// The result is deduplicated, keeps input order and never contains "".
func SlugCandidates(input string) []string {
	base := strings.ToLower(strings.TrimSpace(input))
	if base == "" {
		return nil
	}
	variants := []string{
		base,
		strings.ReplaceAll(base, "_", "-"),
		strings.ReplaceAll(base, "-", "_"),
	}
	out := make([]string, 0, len(variants))
	for _, v := range variants {
		dup := false
		for _, seen := range out {
			if seen == v {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}
