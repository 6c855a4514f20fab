package classify

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"habernexus/internal/domain"
)

type fakeDirectory struct {
	authors    []domain.PersonaAuthor
	categories []domain.Category
	err        error
}

func (f *fakeDirectory) ListAuthors(ctx context.Context) ([]domain.PersonaAuthor, error) {
	return f.authors, f.err
}

func (f *fakeDirectory) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return f.categories, f.err
}

func testDirectory() *fakeDirectory {
	categories := []domain.Category{
		{ID: 1, Name: "Teknoloji & Bilim", Slug: "teknoloji-bilim"},
		{ID: 2, Name: "Global Siyaset", Slug: "global-siyaset"},
		{ID: 3, Name: "Ekonomi & Finans", Slug: "ekonomi-finans"},
		{ID: 4, Name: "Sağlık & Yaşam", Slug: "saglik-yasam"},
		{ID: 5, Name: "Kültür & Sanat", Slug: "kultur-sanat"},
		{ID: 6, Name: "Spor", Slug: "spor"},
		{ID: 7, Name: "Genel Gündem", Slug: "genel-gundem"},
	}
	authors := make([]domain.PersonaAuthor, 0, len(categories))
	for i, cat := range categories {
		authors = append(authors, domain.PersonaAuthor{
			ID:        int64(i + 1),
			Name:      fmt.Sprintf("Persona %d", i+1),
			Specialty: cat.Name,
		})
	}
	return &fakeDirectory{authors: authors, categories: categories}
}

func loadedCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog(testDirectory())
	require.NoError(t, c.Refresh(context.Background()))
	return c
}

func TestClassifyKeywordMatch(t *testing.T) {
	t.Parallel()

	c := loadedCatalog(t)
	category, author, err := c.Classify("Yapay Zeka Haberi", "yapay zeka alanında yeni bir gelişme")
	require.NoError(t, err)
	require.Equal(t, "teknoloji-bilim", category.Slug)
	require.Equal(t, category.Name, author.Specialty)
}

func TestClassifyFallback(t *testing.T) {
	t.Parallel()

	c := loadedCatalog(t)
	category, author, err := c.Classify("Sakin bir gün", "kayda değer bir şey yok")
	require.NoError(t, err)
	require.Equal(t, "genel-gundem", category.Slug)
	require.Equal(t, "Genel Gündem", author.Specialty)
}

func TestClassifyFirstRuleWins(t *testing.T) {
	t.Parallel()

	c := loadedCatalog(t)
	// Contains both a technology and a politics keyword; the technology
	// rule is declared first.
	category, _, err := c.Classify("Hükümet yapay zeka stratejisini açıkladı", "")
	require.NoError(t, err)
	require.Equal(t, "teknoloji-bilim", category.Slug)
}

func TestClassifySpecialtyInvariant(t *testing.T) {
	t.Parallel()

	c := loadedCatalog(t)
	titles := []string{
		"Borsa güne yükselişle başladı",
		"Şampiyonlar Ligi maç sonuçları",
		"Yeni sergi kapılarını açtı",
		"Hastane randevu sistemi değişti",
		"Seçim takvimi belli oldu",
		"Hiçbir anahtar kelime içermeyen başlık",
	}
	for _, title := range titles {
		category, author, err := c.Classify(title, "")
		require.NoError(t, err)
		require.Equal(t, category.Name, author.Specialty, "title %q", title)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	t.Parallel()

	c := loadedCatalog(t)
	category, _, err := c.Classify("FUTBOL GÜNDEMI", "")
	require.NoError(t, err)
	require.Equal(t, "spor", category.Slug)
}

func TestClassifyUnloadedCatalog(t *testing.T) {
	t.Parallel()

	c := NewCatalog(testDirectory())
	_, _, err := c.Classify("Yapay zeka", "")
	require.Error(t, err)
}

func TestRefreshEmptyDirectory(t *testing.T) {
	t.Parallel()

	c := NewCatalog(&fakeDirectory{})
	require.Error(t, c.Refresh(context.Background()))
}

func TestRefreshReplacesSnapshot(t *testing.T) {
	t.Parallel()

	dir := testDirectory()
	c := NewCatalog(dir)
	require.NoError(t, c.Refresh(context.Background()))

	// Rename the fallback category; a refresh must pick up the new snapshot.
	dir.categories[6].Name = "Gündem"
	dir.authors[6].Specialty = "Gündem"
	require.NoError(t, c.Refresh(context.Background()))

	category, author, err := c.Classify("sıradan bir başlık", "")
	require.NoError(t, err)
	require.Equal(t, "Gündem", category.Name)
	require.Equal(t, "Gündem", author.Specialty)
}
