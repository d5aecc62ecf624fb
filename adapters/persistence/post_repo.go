package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhvu/folio/internal/domain/post"
	"github.com/minhvu/folio/pkg/apperror"
	"github.com/minhvu/folio/pkg/logger"
)

type postgresPostRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresPostRepo(db *pgxpool.Pool, logger logger.Logger) post.Repository {
	return &postgresPostRepo{db: db, logger: logger}
}

const postColumns = `id, title, slug, description, content, read_time, published_at, is_published, created_at, updated_at`

// scanPostRow leaves driver errors unwrapped so callers can tell
// constraint violations and missing rows apart.
func scanPostRow(row pgx.Row) (*post.BlogPost, error) {
	p := &post.BlogPost{}
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Description,
		&p.Content,
		&p.ReadTime,
		&p.PublishedAt,
		&p.IsPublished,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanPost(row pgx.Row) (*post.BlogPost, error) {
	p, err := scanPostRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("post", "")
		}
		return nil, apperror.NewInternal("failed to scan post row", err)
	}
	return p, nil
}

func scanPosts(rows pgx.Rows) ([]*post.BlogPost, error) {
	defer rows.Close()
	posts := make([]*post.BlogPost, 0)

	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating post rows", err)
	}
	return posts, nil
}

func (r *postgresPostRepo) list(ctx context.Context, builder sq.SelectBuilder) ([]*post.BlogPost, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build post list query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query posts", err)
	}
	return scanPosts(rows)
}

func (r *postgresPostRepo) ListPublished(ctx context.Context) ([]*post.BlogPost, error) {
	builder := psql.Select(postColumns).
		From("blog_posts").
		Where(sq.Eq{"is_published": true}).
		OrderBy("published_at DESC")
	return r.list(ctx, builder)
}

func (r *postgresPostRepo) ListAll(ctx context.Context) ([]*post.BlogPost, error) {
	builder := psql.Select(postColumns).
		From("blog_posts").
		OrderBy("created_at DESC")
	return r.list(ctx, builder)
}

func (r *postgresPostRepo) GetPublishedBySlug(ctx context.Context, slug string) (*post.BlogPost, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts WHERE slug = $1 AND is_published = true`

	p, err := scanPost(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("post", slug)
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresPostRepo) GetByID(ctx context.Context, id uuid.UUID) (*post.BlogPost, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts WHERE id = $1`

	p, err := scanPost(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("post", id.String())
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresPostRepo) Create(ctx context.Context, p *post.BlogPost) (*post.BlogPost, error) {
	query := `
		INSERT INTO blog_posts (title, slug, description, content, read_time, published_at, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + postColumns

	row := r.db.QueryRow(ctx, query,
		p.Title, p.Slug, p.Description, p.Content,
		p.ReadTime, p.PublishedAt, p.IsPublished,
	)
	created, err := scanPostRow(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.NewConflict("post", "slug", p.Slug)
		}
		return nil, apperror.NewInternal("failed to create post", err)
	}
	return created, nil
}

func (r *postgresPostRepo) Update(ctx context.Context, p *post.BlogPost) (*post.BlogPost, error) {
	query := `
		UPDATE blog_posts SET
			title = $2, slug = $3, description = $4, content = $5,
			read_time = $6, published_at = $7, is_published = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + postColumns

	row := r.db.QueryRow(ctx, query,
		p.ID, p.Title, p.Slug, p.Description, p.Content,
		p.ReadTime, p.PublishedAt, p.IsPublished,
	)
	updated, err := scanPostRow(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.NewConflict("post", "slug", p.Slug)
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("post", p.ID.String())
		}
		return nil, apperror.NewInternal("failed to update post", err)
	}
	return updated, nil
}

func (r *postgresPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete post", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("post", id.String())
	}
	return nil
}

func (r *postgresPostRepo) SetReadTime(ctx context.Context, id uuid.UUID, minutes int) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE blog_posts SET read_time = $2 WHERE id = $1`, id, minutes)
	if err != nil {
		return apperror.NewInternal("failed to set post read time", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("post", id.String())
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
