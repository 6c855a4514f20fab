package domain

import "time"

// CandidateItem is a single unprocessed feed entry. It lives for one
// pipeline pass and is never stored directly.
type CandidateItem struct {
	Title       string
	Description string
	Link        string
	ImageURL    string
	PublishedAt time.Time
}

// PersonaAuthor is a fixed fictitious byline with a declared topical
// specialty, used to attribute generated articles.
type PersonaAuthor struct {
	ID        int64
	Name      string
	Slug      string
	AvatarURL string
	Bio       string
	Specialty string
}

// Category groups articles by topic. Specialty on PersonaAuthor must equal
// the Name of exactly one Category for the classifier to reach it.
type Category struct {
	ID          int64
	Name        string
	Slug        string
	Description string
}

// GeneratedText is the output of the generative backend for one item.
type GeneratedText struct {
	Content string
	Excerpt string
}

// Article is the persisted, publishable unit. It is created exactly once
// and never mutated by this worker; view counts belong to the serving layer.
type Article struct {
	ID               int64
	Title            string
	Slug             string
	Excerpt          string
	Content          string
	FeaturedImageURL string // empty when no image asset was produced
	AuthorID         int64
	CategoryID       int64
	Published        bool
	SourceURL        string
	ViewCount        int
	CreatedAt        time.Time
	PublishedAt      time.Time
}
