// Package storage persists articles and the persona/category directory in
// Postgres. It is the only component that writes to the shared store.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"habernexus/internal/domain"
	"habernexus/internal/ports"
)

// Schema creates the tables the worker owns. The serving layer reads the
// same tables; column names follow its contract.
const Schema = `
CREATE TABLE IF NOT EXISTS authors (
    id          BIGSERIAL PRIMARY KEY,
    name        TEXT NOT NULL,
    slug        TEXT NOT NULL UNIQUE,
    avatar_url  TEXT,
    bio         TEXT,
    specialty   TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS categories (
    id          BIGSERIAL PRIMARY KEY,
    name        TEXT NOT NULL,
    slug        TEXT NOT NULL UNIQUE,
    description TEXT,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS posts (
    id                 BIGSERIAL PRIMARY KEY,
    title              TEXT NOT NULL,
    slug               TEXT NOT NULL UNIQUE,
    excerpt            TEXT,
    content            TEXT NOT NULL,
    featured_image_url TEXT,
    author_id          BIGINT NOT NULL REFERENCES authors(id),
    category_id        BIGINT NOT NULL REFERENCES categories(id),
    published          BOOLEAN NOT NULL DEFAULT TRUE,
    view_count         INTEGER NOT NULL DEFAULT 0,
    source_url         TEXT,
    created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    published_at       TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_posts_category ON posts(category_id);
CREATE INDEX IF NOT EXISTS idx_posts_published_at ON posts(published_at);
`

// PostgresRepository implements both the article write path and the
// directory read path.
type PostgresRepository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

var _ ports.ArticleRepository = (*PostgresRepository)(nil)
var _ ports.DirectoryRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Migrate applies the schema; safe to run on every start.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// ExistsBySlug reports whether an article with the given slug is already
// persisted. Errors must be surfaced to the caller, never mapped to false.
func (r *PostgresRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	query, args, err := r.sb.Select("1").
		From("posts").
		Where(sq.Eq{"slug": slug}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists by slug: %w", err)
	}
	return true, nil
}

// Insert persists a finished article and returns it with the assigned id.
func (r *PostgresRepository) Insert(ctx context.Context, a domain.Article) (domain.Article, error) {
	featured := sql.NullString{String: a.FeaturedImageURL, Valid: a.FeaturedImageURL != ""}

	query, args, err := r.sb.Insert("posts").
		Columns("title", "slug", "excerpt", "content", "featured_image_url",
			"author_id", "category_id", "published", "view_count", "source_url", "published_at").
		Values(a.Title, a.Slug, a.Excerpt, a.Content, featured,
			a.AuthorID, a.CategoryID, a.Published, a.ViewCount, a.SourceURL, a.PublishedAt).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return domain.Article{}, fmt.Errorf("build insert: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt); err != nil {
		return domain.Article{}, fmt.Errorf("insert post %s: %w", a.Slug, err)
	}
	return a, nil
}

// ListAuthors loads the full persona directory.
func (r *PostgresRepository) ListAuthors(ctx context.Context) ([]domain.PersonaAuthor, error) {
	query, args, err := r.sb.Select("id", "name", "slug", "avatar_url", "bio", "specialty").
		From("authors").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build authors query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query authors: %w", err)
	}
	defer rows.Close()

	var authors []domain.PersonaAuthor
	for rows.Next() {
		var a domain.PersonaAuthor
		var avatar, bio sql.NullString
		if err := rows.Scan(&a.ID, &a.Name, &a.Slug, &avatar, &bio, &a.Specialty); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		a.AvatarURL = avatar.String
		a.Bio = bio.String
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate authors: %w", err)
	}
	return authors, nil
}

// ListCategories loads the full category directory.
func (r *PostgresRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query, args, err := r.sb.Select("id", "name", "slug", "description").
		From("categories").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build categories query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		var description sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Description = description.String
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}
