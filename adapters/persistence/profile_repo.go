package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhvu/folio/internal/domain/profile"
	"github.com/minhvu/folio/pkg/apperror"
	"github.com/minhvu/folio/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

const profileColumns = `id, name, initials, tagline, about_text, is_available_for_work, github_url, linkedin_url, email, created_at, updated_at`

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Initials,
		&p.Tagline,
		&p.AboutText,
		&p.IsAvailableForWork,
		&p.GithubURL,
		&p.LinkedinURL,
		&p.Email,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// Get enforces the singleton shape. The LIMIT 2 read is enough to tell
// apart zero, one, and too many rows without counting the table.
func (r *postgresProfileRepo) Get(ctx context.Context) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profile LIMIT 2`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperror.NewInternal("failed to query profile", err)
	}
	defer rows.Close()

	var found *profile.Profile
	for rows.Next() {
		if found != nil {
			return nil, apperror.NewInternal("profile table holds more than one row", profile.ErrMultipleProfiles)
		}
		p, err := scanProfile(rows)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan profile row", err)
		}
		found = p
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profile rows", err)
	}
	if found == nil {
		return nil, apperror.NewNotFound("profile", "singleton")
	}
	return found, nil
}

func (r *postgresProfileRepo) Update(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	query := `
		UPDATE profile SET
			name = $2, initials = $3, tagline = $4, about_text = $5,
			is_available_for_work = $6, github_url = $7, linkedin_url = $8,
			email = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + profileColumns

	row := r.db.QueryRow(ctx, query,
		p.ID, p.Name, p.Initials, p.Tagline, p.AboutText,
		p.IsAvailableForWork, p.GithubURL, p.LinkedinURL, p.Email,
	)
	updated, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", p.ID.String())
		}
		return nil, apperror.NewInternal("failed to update profile", err)
	}
	return updated, nil
}
