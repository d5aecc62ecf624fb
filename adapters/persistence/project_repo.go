package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhvu/folio/internal/domain/project"
	"github.com/minhvu/folio/pkg/apperror"
	"github.com/minhvu/folio/pkg/logger"
)

type postgresProjectRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProjectRepo(db *pgxpool.Pool, logger logger.Logger) project.Repository {
	return &postgresProjectRepo{db: db, logger: logger}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const projectColumns = `id, title, description, tags, url, github_url, image_url, display_order, is_visible, created_at, updated_at`

func scanProject(row pgx.Row) (*project.Project, error) {
	p := &project.Project{}
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Tags,
		&p.URL,
		&p.GithubURL,
		&p.ImageURL,
		&p.DisplayOrder,
		&p.IsVisible,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("project", "")
		}
		return nil, apperror.NewInternal("failed to scan project row", err)
	}
	return p, nil
}

func scanProjects(rows pgx.Rows) ([]*project.Project, error) {
	defer rows.Close()
	projects := make([]*project.Project, 0)

	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating project rows", err)
	}
	return projects, nil
}

func (r *postgresProjectRepo) list(ctx context.Context, builder sq.SelectBuilder) ([]*project.Project, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build project list query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query projects", err)
	}
	return scanProjects(rows)
}

func (r *postgresProjectRepo) ListVisible(ctx context.Context) ([]*project.Project, error) {
	builder := psql.Select(projectColumns).
		From("projects").
		Where(sq.Eq{"is_visible": true}).
		OrderBy("display_order ASC")
	return r.list(ctx, builder)
}

func (r *postgresProjectRepo) ListAll(ctx context.Context) ([]*project.Project, error) {
	builder := psql.Select(projectColumns).
		From("projects").
		OrderBy("display_order ASC")
	return r.list(ctx, builder)
}

func (r *postgresProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	p, err := scanProject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("project", id.String())
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresProjectRepo) Create(ctx context.Context, p *project.Project) (*project.Project, error) {
	query := `
		INSERT INTO projects (title, description, tags, url, github_url, image_url, display_order, is_visible)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + projectColumns

	row := r.db.QueryRow(ctx, query,
		p.Title, p.Description, p.Tags, p.URL,
		p.GithubURL, p.ImageURL, p.DisplayOrder, p.IsVisible,
	)
	return scanProject(row)
}

func (r *postgresProjectRepo) Update(ctx context.Context, p *project.Project) (*project.Project, error) {
	query := `
		UPDATE projects SET
			title = $2, description = $3, tags = $4, url = $5, github_url = $6,
			image_url = $7, display_order = $8, is_visible = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + projectColumns

	row := r.db.QueryRow(ctx, query,
		p.ID, p.Title, p.Description, p.Tags, p.URL,
		p.GithubURL, p.ImageURL, p.DisplayOrder, p.IsVisible,
	)
	updated, err := scanProject(row)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("project", p.ID.String())
		}
		return nil, err
	}
	return updated, nil
}

func (r *postgresProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete project", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("project", id.String())
	}
	return nil
}
