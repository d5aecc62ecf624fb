package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Profile is the site owner's card shown on the public home page. It is
// a singleton: the row is seeded out of band and the application only
// ever reads or updates it, never creates or deletes it.
type Profile struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Initials           string    `json:"initials"`
	Tagline            string    `json:"tagline"`
	AboutText          string    `json:"about_text"`
	IsAvailableForWork bool      `json:"is_available_for_work"`
	GithubURL          *string   `json:"github_url"`
	LinkedinURL        *string   `json:"linkedin_url"`
	Email              *string   `json:"email"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ErrMultipleProfiles means the table holds more than one row; the
// single-row read refuses to pick one.
var ErrMultipleProfiles = errors.New("multiple profile rows")

type Repository interface {
	// Get returns the singleton profile row. Zero rows or more than one
	// row is an error.
	Get(ctx context.Context) (*Profile, error)
	// Update writes the mutable fields and returns the stored row.
	Update(ctx context.Context, p *Profile) (*Profile, error)
}
