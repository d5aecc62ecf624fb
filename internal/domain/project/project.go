package project

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Project is a portfolio entry. DisplayOrder is the ascending public
// sort key and IsVisible gates the public listing; the admin list is
// unfiltered.
type Project struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Tags         []string  `json:"tags"`
	URL          *string   `json:"url"`
	GithubURL    *string   `json:"github_url"`
	ImageURL     *string   `json:"image_url"`
	DisplayOrder int       `json:"display_order"`
	IsVisible    bool      `json:"is_visible"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SplitTags turns the admin form's free-text tag field into a tag list:
// split on commas, trim each piece, drop empties, keep order.
func SplitTags(s string) []string {
	var out []string
	for _, piece := range strings.Split(s, ",") {
		if t := strings.TrimSpace(piece); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// JoinTags is the inverse presentation of SplitTags for form pre-fill.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

type Repository interface {
	// ListVisible returns is_visible rows ordered by display_order
	// ascending; the public project list.
	ListVisible(ctx context.Context) ([]*Project, error)
	// ListAll returns every row ordered by display_order ascending; the
	// admin list.
	ListAll(ctx context.Context) ([]*Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Project, error)
	// Create inserts and returns the stored row with its server-assigned
	// id and timestamps.
	Create(ctx context.Context, p *Project) (*Project, error)
	// Update writes by id and returns the stored row.
	Update(ctx context.Context, p *Project) (*Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
