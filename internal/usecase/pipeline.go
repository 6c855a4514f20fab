// Package usecase contains the ingestion pipeline and the cycle scheduler
// that drives it.
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"habernexus/internal/classify"
	"habernexus/internal/domain"
	"habernexus/internal/ports"
	"habernexus/internal/slug"
)

// PipelineDeps bundles everything a pipeline needs.
type PipelineDeps struct {
	Source       ports.ItemSource
	Repository   ports.ArticleRepository
	Catalog      *classify.Catalog
	Generator    ports.ContentGenerator
	Images       ports.ImageProcessor
	Feeds        []string
	ItemsPerFeed int
	ItemDelay    time.Duration
	Logger       *slog.Logger
}

// Pipeline turns feed items into persisted articles: fetch, dedup, classify,
// generate, illustrate, insert.
type Pipeline struct {
	source       ports.ItemSource
	repo         ports.ArticleRepository
	catalog      *classify.Catalog
	generator    ports.ContentGenerator
	images       ports.ImageProcessor
	feeds        []string
	itemsPerFeed int
	itemDelay    time.Duration
	logger       *slog.Logger
	now          func() time.Time
}

// NewPipeline builds a pipeline from its dependencies.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		source:       deps.Source,
		repo:         deps.Repository,
		catalog:      deps.Catalog,
		generator:    deps.Generator,
		images:       deps.Images,
		feeds:        deps.Feeds,
		itemsPerFeed: deps.ItemsPerFeed,
		itemDelay:    deps.ItemDelay,
		logger:       logger,
		now:          time.Now,
	}
}

// RunCycle processes every configured feed once. A failing feed is logged
// and skipped; the remaining feeds still run. Only context cancellation
// stops the cycle early.
func (p *Pipeline) RunCycle(ctx context.Context) {
	started := p.now()
	p.logger.Info("cycle started", "feeds", len(p.feeds))

	for _, feedURL := range p.feeds {
		if ctx.Err() != nil {
			p.logger.Info("cycle interrupted", "reason", ctx.Err())
			return
		}
		if err := p.processFeed(ctx, feedURL); err != nil {
			p.logger.Error("feed failed", "feed", feedURL, "error", err)
		}
	}

	p.logger.Info("cycle finished", "duration", p.now().Sub(started).String())
}

func (p *Pipeline) processFeed(ctx context.Context, feedURL string) error {
	items, err := p.source.Fetch(ctx, feedURL)
	if err != nil {
		return err
	}

	if p.itemsPerFeed > 0 && len(items) > p.itemsPerFeed {
		items = items[:p.itemsPerFeed]
	}
	p.logger.Info("feed fetched", "feed", feedURL, "items", len(items))

	for i, item := range items {
		if err := p.processItem(ctx, item); err != nil {
			p.logger.Error("item failed", "feed", feedURL, "title", item.Title, "error", err)
		}
		if i < len(items)-1 {
			if err := p.pause(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// processItem runs the full per-item flow. Any error abandons this item
// only; an image failure is the one soft spot — the article is still
// published, just without a picture.
func (p *Pipeline) processItem(ctx context.Context, item domain.CandidateItem) error {
	sg := slug.Make(item.Title)
	if sg == "" {
		p.logger.Debug("item skipped, empty slug", "title", item.Title)
		return nil
	}

	exists, err := p.repo.ExistsBySlug(ctx, sg)
	if err != nil {
		return &domain.PersistenceError{Op: "exists", Err: err}
	}
	if exists {
		p.logger.Debug("item skipped, already persisted", "slug", sg)
		return nil
	}

	category, persona, err := p.catalog.Classify(item.Title, item.Description)
	if err != nil {
		return err
	}

	if p.generator == nil {
		return &domain.GenerationError{Err: errors.New("generator not configured")}
	}
	text, err := p.generator.Generate(ctx, item, persona)
	if err != nil {
		return err
	}

	var featuredURL string
	if item.ImageURL != "" && p.images != nil {
		featuredURL, err = p.images.Process(ctx, item.ImageURL)
		if err != nil {
			p.logger.Warn("image processing failed, publishing without image",
				"slug", sg, "image", item.ImageURL, "error", err)
			featuredURL = ""
		}
	}

	article := domain.Article{
		Title:            item.Title,
		Slug:             sg,
		Excerpt:          text.Excerpt,
		Content:          text.Content,
		FeaturedImageURL: featuredURL,
		AuthorID:         persona.ID,
		CategoryID:       category.ID,
		Published:        true,
		SourceURL:        item.Link,
		ViewCount:        0,
		PublishedAt:      p.now(),
	}

	stored, err := p.repo.Insert(ctx, article)
	if err != nil {
		return &domain.PersistenceError{Op: "insert", Err: err}
	}

	p.logger.Info("article created",
		"id", stored.ID, "slug", stored.Slug,
		"category", category.Slug, "author", persona.Slug)
	return nil
}

func (p *Pipeline) pause(ctx context.Context) error {
	if p.itemDelay <= 0 {
		return nil
	}
	select {
	case <-time.After(p.itemDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
