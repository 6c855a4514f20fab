package classify

import (
	"context"
	"fmt"
	"sync"

	"habernexus/internal/domain"
	"habernexus/internal/ports"
)

// Catalog is an owned snapshot of the persona/category directory. It is
// loaded once at startup and replaced wholesale by Refresh; there is no
// in-place mutation, so a snapshot stays consistent for the life of a cycle.
type Catalog struct {
	dir ports.DirectoryRepository

	mu                 sync.RWMutex
	categoriesBySlug   map[string]domain.Category
	authorsBySpecialty map[string]domain.PersonaAuthor
}

// NewCatalog wires the directory repository; call Refresh before Classify.
func NewCatalog(dir ports.DirectoryRepository) *Catalog {
	return &Catalog{dir: dir}
}

// Refresh loads a fresh directory snapshot from the store. An empty authors
// or categories table is a configuration error, not an empty-but-valid
// state: classification cannot produce a result without both.
func (c *Catalog) Refresh(ctx context.Context) error {
	authors, err := c.dir.ListAuthors(ctx)
	if err != nil {
		return fmt.Errorf("list authors: %w", err)
	}
	categories, err := c.dir.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	if len(authors) == 0 {
		return fmt.Errorf("author directory is empty")
	}
	if len(categories) == 0 {
		return fmt.Errorf("category directory is empty")
	}

	bySlug := make(map[string]domain.Category, len(categories))
	for _, cat := range categories {
		bySlug[cat.Slug] = cat
	}
	bySpecialty := make(map[string]domain.PersonaAuthor, len(authors))
	for _, a := range authors {
		bySpecialty[a.Specialty] = a
	}

	c.mu.Lock()
	c.categoriesBySlug = bySlug
	c.authorsBySpecialty = bySpecialty
	c.mu.Unlock()
	return nil
}

// Classify resolves the category and its bound persona for an item. The
// returned author's specialty always equals the returned category's name.
func (c *Catalog) Classify(title, description string) (domain.Category, domain.PersonaAuthor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.categoriesBySlug) == 0 || len(c.authorsBySpecialty) == 0 {
		return domain.Category{}, domain.PersonaAuthor{}, fmt.Errorf("catalog not loaded")
	}

	slug := matchCategorySlug(title, description)
	category, ok := c.categoriesBySlug[slug]
	if !ok {
		return domain.Category{}, domain.PersonaAuthor{}, fmt.Errorf("category %s missing from directory", slug)
	}
	author, ok := c.authorsBySpecialty[category.Name]
	if !ok {
		return domain.Category{}, domain.PersonaAuthor{}, fmt.Errorf("no persona with specialty %q", category.Name)
	}
	return category, author, nil
}
