package post

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BlogPost is a markdown article. IsPublished gates the public listing
// and the slug route; PublishedAt is non-nil exactly while published.
type BlogPost struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Content     string     `json:"content"`
	ReadTime    int        `json:"read_time"`
	PublishedAt *time.Time `json:"published_at"`
	IsPublished bool       `json:"is_published"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

var (
	ErrInvalidSlug = errors.New("slug only allows lowercase letters, digits, and hyphens")

	slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

func (p *BlogPost) Validate() error {
	if !slugRegex.MatchString(p.Slug) {
		return ErrInvalidSlug
	}
	return nil
}

// SetPublished applies the publish flag from an admin save. PublishedAt
// is recomputed from the flag every time: now while published, nil
// otherwise. A prior publish date is never preserved across a republish.
func (p *BlogPost) SetPublished(published bool, now time.Time) {
	p.IsPublished = published
	if published {
		t := now.UTC()
		p.PublishedAt = &t
	} else {
		p.PublishedAt = nil
	}
}

// Slugify derives a URL slug from a title: lowercase, runs of anything
// outside [a-z0-9] collapse into a single hyphen, no leading or
// trailing hyphen. Idempotent: a valid slug maps to itself.
func Slugify(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))
	var b strings.Builder
	pending := false
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
		default:
			pending = true
		}
	}
	return b.String()
}

// EstimateReadTime derives a read time in minutes from markdown word
// count at roughly 200 words per minute, never less than one minute.
func EstimateReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

type Repository interface {
	// ListPublished returns is_published rows ordered by published_at
	// descending; the public blog index.
	ListPublished(ctx context.Context) ([]*BlogPost, error)
	// ListAll returns every row ordered by created_at descending; the
	// admin list.
	ListAll(ctx context.Context) ([]*BlogPost, error)
	// GetPublishedBySlug returns the single published row with the given
	// slug; a draft with that slug counts as not found.
	GetPublishedBySlug(ctx context.Context, slug string) (*BlogPost, error)
	// GetByID returns a row regardless of publish state; used by the
	// content worker.
	GetByID(ctx context.Context, id uuid.UUID) (*BlogPost, error)
	Create(ctx context.Context, p *BlogPost) (*BlogPost, error)
	Update(ctx context.Context, p *BlogPost) (*BlogPost, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SetReadTime back-fills the derived read time without touching the
	// rest of the row.
	SetReadTime(ctx context.Context, id uuid.UUID, minutes int) error
}
