package ports

import (
	"context"
	"time"

	"habernexus/internal/domain"
)

// ItemSource pulls candidate items from one syndication endpoint,
// preserving feed-declared order.
type ItemSource interface {
	Fetch(ctx context.Context, feedURL string) ([]domain.CandidateItem, error)
}

// ArticleRepository is the sole write path into the shared article store.
// ExistsBySlug is the deduplication gate; its key must match exactly the
// key used at insert time.
type ArticleRepository interface {
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Insert(ctx context.Context, article domain.Article) (domain.Article, error)
}

// DirectoryRepository loads the persona/category directory backing the
// classifier catalog snapshot.
type DirectoryRepository interface {
	ListAuthors(ctx context.Context) ([]domain.PersonaAuthor, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// ContentGenerator synthesizes a full article body and excerpt for an item,
// written in the voice of the assigned persona.
type ContentGenerator interface {
	Generate(ctx context.Context, item domain.CandidateItem, persona domain.PersonaAuthor) (domain.GeneratedText, error)
}

// ImageProcessor normalizes and brands a remote image, returning the URL of
// the durably stored asset.
type ImageProcessor interface {
	Process(ctx context.Context, imageURL string) (string, error)
}

// AssetStore persists processed asset bytes and returns their public URL.
type AssetStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Scheduler controls when ingestion cycles execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
