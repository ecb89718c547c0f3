package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stickerpress/internal/domain"
	"stickerpress/internal/repos"
	"stickerpress/internal/services"
)

func newCatalog(t *testing.T) (*services.CatalogService, *repos.ProductRepo) {
	t.Helper()
	db := seededDB(t)
	repo := repos.NewProductRepo(db)
	return services.NewCatalogService(repo), repo
}

func TestSearchMatchesNameAndDescription(t *testing.T) {
	catalog, repo := newCatalog(t)

	// Trim the catalog down to the first two seeded products so the
	// expected result set is exact.
	all, err := catalog.List()
	require.NoError(t, err)
	for _, p := range all {
		if p.ID > 2 {
			require.NoError(t, repo.Delete(p.ID))
		}
	}

	got, err := catalog.Search("sticker")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Adventure Sticker Pack", got[0].Name)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	catalog, _ := newCatalog(t)

	got, err := catalog.Search("GLOSSY")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

// The query is a literal substring: "_" must not act as a single-character
// LIKE wildcard.
func TestSearchTreatsWildcardsAsLiterals(t *testing.T) {
	catalog, _ := newCatalog(t)

	// No seeded product text contains an underscore.
	got, err := catalog.Search("_stick")
	require.NoError(t, err)
	assert.Empty(t, got)

	// A real underscore in the catalog is still findable.
	p, err := catalog.Add(domain.Product{
		Name: "limited_run decal", Price: "5.00",
		ImageURL: "/img/lr.png", Category: domain.CategorySticker,
		Description: "Numbered short run",
	})
	require.NoError(t, err)

	got, err = catalog.Search("limited_run")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, p.ID, got[0].ID)
}

func TestSearchNoMatchesIsEmptyNotError(t *testing.T) {
	catalog, _ := newCatalog(t)

	got, err := catalog.Search("zzzzz")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListByCategory(t *testing.T) {
	catalog, _ := newCatalog(t)

	stickers, err := catalog.ListByCategory(domain.CategorySticker)
	require.NoError(t, err)
	require.NotEmpty(t, stickers)
	for _, p := range stickers {
		assert.Equal(t, domain.CategorySticker, p.Category)
	}

	photos, err := catalog.ListByCategory(domain.CategoryPhoto)
	require.NoError(t, err)
	require.NotEmpty(t, photos)
	for _, p := range photos {
		assert.Equal(t, domain.CategoryPhoto, p.Category)
	}
}

func TestAddNormalizesPrice(t *testing.T) {
	catalog, _ := newCatalog(t)

	p, err := catalog.Add(domain.Product{
		Name: "Retro Badge Sticker", Price: "9.9",
		ImageURL: "/img/badge.png", Category: domain.CategorySticker,
		Description: "A single die-cut badge",
	})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "9.90", p.Price)

	got, err := catalog.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "9.90", got.Price)
}

func TestAddRejectsBadPrice(t *testing.T) {
	catalog, _ := newCatalog(t)

	_, err := catalog.Add(domain.Product{Name: "Broken", Price: "free", Category: domain.CategorySticker})
	assert.Error(t, err)
}

func TestUpdateReturnsStoredRow(t *testing.T) {
	catalog, _ := newCatalog(t)

	p, err := catalog.Get(1)
	require.NoError(t, err)
	p.Name = "Adventure Sticker Pack v2"
	p.Price = "14.5"

	got, err := catalog.Update(p)
	require.NoError(t, err)
	assert.Equal(t, "Adventure Sticker Pack v2", got.Name)
	assert.Equal(t, "14.50", got.Price)
}

func TestUpdateUnknownID(t *testing.T) {
	catalog, _ := newCatalog(t)

	_, err := catalog.Update(domain.Product{ID: 9999, Name: "Ghost", Price: "1.00", Category: domain.CategoryPhoto})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeleteRemovesFromListing(t *testing.T) {
	catalog, _ := newCatalog(t)

	before, err := catalog.List()
	require.NoError(t, err)

	require.NoError(t, catalog.Delete(1))

	after, err := catalog.List()
	require.NoError(t, err)
	assert.Len(t, after, len(before)-1)

	_, err = catalog.Get(1)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
