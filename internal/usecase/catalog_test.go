package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentranbao-ct/storefront/internal/models"
)

func namedProduct(id int64, title, price string, rating float64) models.Product {
	p := testProduct(id, price, "0")
	p.Title = title
	p.Rating = rating
	return p
}

func TestApplyFiltersSearch(t *testing.T) {
	products := []models.Product{
		namedProduct(1, "Essence Mascara", "9.99", 4.5),
		namedProduct(2, "Powder Canister", "14.99", 4.0),
		namedProduct(3, "Red Lipstick", "12.99", 4.2),
	}

	filtered := ApplyFilters(products, "ESSENCE", nil, SortDefault)
	require.Len(t, filtered, 1)
	assert.Equal(t, int64(1), filtered[0].ID)

	// substring match anywhere in the title
	filtered = ApplyFilters(products, "ister", nil, SortDefault)
	require.Len(t, filtered, 1)
	assert.Equal(t, int64(2), filtered[0].ID)

	// surrounding whitespace is ignored
	filtered = ApplyFilters(products, "  lipstick ", nil, SortDefault)
	require.Len(t, filtered, 1)

	assert.Len(t, ApplyFilters(products, "", nil, SortDefault), 3)
	assert.Empty(t, ApplyFilters(products, "nothing", nil, SortDefault))
}

func categorizedProduct(id int64, title, category string) models.Product {
	p := namedProduct(id, title, "10", 4.0)
	p.Category = category
	return p
}

func TestApplyFiltersCategories(t *testing.T) {
	products := []models.Product{
		categorizedProduct(1, "Essence Mascara", "beauty"),
		categorizedProduct(2, "Kitchen Knife", "kitchen-accessories"),
		categorizedProduct(3, "Red Lipstick", "beauty"),
		categorizedProduct(4, "Table Lamp", "furniture"),
	}

	ids := func(ps []models.Product) []int64 {
		out := make([]int64, len(ps))
		for i, p := range ps {
			out[i] = p.ID
		}
		return out
	}

	// single category
	assert.Equal(t, []int64{1, 3}, ids(ApplyFilters(products, "", []string{"beauty"}, SortDefault)))

	// multi-select keeps every matching category
	assert.Equal(t, []int64{1, 3, 4}, ids(ApplyFilters(products, "", []string{"beauty", "furniture"}, SortDefault)))

	// selection is case-insensitive and whitespace-tolerant
	assert.Equal(t, []int64{4}, ids(ApplyFilters(products, "", []string{" Furniture "}, SortDefault)))

	// category and search combine
	assert.Equal(t, []int64{3}, ids(ApplyFilters(products, "lipstick", []string{"beauty"}, SortDefault)))

	// empty selection matches everything
	assert.Len(t, ApplyFilters(products, "", nil, SortDefault), 4)
	assert.Len(t, ApplyFilters(products, "", []string{"", "  "}, SortDefault), 4)

	assert.Empty(t, ApplyFilters(products, "", []string{"groceries"}, SortDefault))
}

func TestApplyFiltersSort(t *testing.T) {
	products := []models.Product{
		namedProduct(1, "A", "20", 3.0),
		namedProduct(2, "B", "10", 5.0),
		namedProduct(3, "C", "15", 4.0),
	}

	ids := func(ps []models.Product) []int64 {
		out := make([]int64, len(ps))
		for i, p := range ps {
			out[i] = p.ID
		}
		return out
	}

	assert.Equal(t, []int64{2, 3, 1}, ids(ApplyFilters(products, "", nil, SortPriceAsc)))
	assert.Equal(t, []int64{1, 3, 2}, ids(ApplyFilters(products, "", nil, SortPriceDesc)))
	assert.Equal(t, []int64{2, 3, 1}, ids(ApplyFilters(products, "", nil, SortRatingDesc)))
	assert.Equal(t, []int64{1, 2, 3}, ids(ApplyFilters(products, "", nil, SortDefault)))
}

func TestApplyFiltersSortIsStable(t *testing.T) {
	products := []models.Product{
		namedProduct(1, "A", "10", 4.0),
		namedProduct(2, "B", "10", 4.0),
		namedProduct(3, "C", "10", 4.0),
	}

	sorted := ApplyFilters(products, "", nil, SortPriceAsc)
	require.Len(t, sorted, 3)
	assert.Equal(t, int64(1), sorted[0].ID)
	assert.Equal(t, int64(2), sorted[1].ID)
	assert.Equal(t, int64(3), sorted[2].ID)
}

func TestPaginate(t *testing.T) {
	products := make([]models.Product, 25)
	for i := range products {
		products[i] = namedProduct(int64(i+1), fmt.Sprintf("p%d", i+1), "10", 4.0)
	}

	page := Paginate(products, 12, 1)
	require.Len(t, page, 12)
	assert.Equal(t, int64(1), page[0].ID)

	page = Paginate(products, 12, 2)
	require.Len(t, page, 12)
	assert.Equal(t, int64(13), page[0].ID)

	// last page holds the remainder
	page = Paginate(products, 12, 3)
	require.Len(t, page, 1)
	assert.Equal(t, int64(25), page[0].ID)

	assert.Empty(t, Paginate(products, 12, 4))
	assert.Empty(t, Paginate(products, 0, 1))
	assert.Empty(t, Paginate(products, 12, 0))
}

func TestBrowseDefaults(t *testing.T) {
	products := make([]models.Product, 0, 30)
	for i := 1; i <= 30; i++ {
		products = append(products, namedProduct(int64(i), fmt.Sprintf("p%d", i), "10", 4.0))
	}
	uc := NewCatalogUsecase(testConfig(), newFakeCatalog(products...))

	result, err := uc.Browse(context.Background(), BrowseParams{})
	require.NoError(t, err)
	assert.Equal(t, 30, result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, defaultPageSize, result.PageSize)
	assert.Equal(t, 3, result.TotalPages)
	assert.Len(t, result.Products, defaultPageSize)
}

func TestBrowseResetsPageOnCriteriaChange(t *testing.T) {
	products := make([]models.Product, 0, 30)
	for i := 1; i <= 30; i++ {
		products = append(products, namedProduct(int64(i), fmt.Sprintf("widget %d", i), "10", 4.0))
	}
	uc := NewCatalogUsecase(testConfig(), newFakeCatalog(products...))
	ctx := context.Background()

	result, err := uc.Browse(ctx, BrowseParams{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Page)

	// same criteria: the requested page sticks
	result, err = uc.Browse(ctx, BrowseParams{Page: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Page)

	// a new search resets back to the first page
	result, err = uc.Browse(ctx, BrowseParams{Page: 3, Search: "widget"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)

	// and so does a new sort order
	result, err = uc.Browse(ctx, BrowseParams{Page: 2, Search: "widget", Sort: SortPriceAsc})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)

	// and a new category selection
	result, err = uc.Browse(ctx, BrowseParams{Page: 2, Search: "widget", Sort: SortPriceAsc, Categories: []string{"beauty"}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
}

func TestBrowseFirstRequestKeepsPage(t *testing.T) {
	products := make([]models.Product, 0, 30)
	for i := 1; i <= 30; i++ {
		products = append(products, namedProduct(int64(i), fmt.Sprintf("widget %d", i), "10", 4.0))
	}

	// a fresh view has no previous criteria, so nothing to reset against
	uc := NewCatalogUsecase(testConfig(), newFakeCatalog(products...))
	result, err := uc.Browse(context.Background(), BrowseParams{Page: 2, Search: "widget", Sort: SortPriceAsc})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, int64(13), result.Products[0].ID)
}

func TestBrowseFiltersByCategory(t *testing.T) {
	uc := NewCatalogUsecase(testConfig(), newFakeCatalog(
		categorizedProduct(1, "Essence Mascara", "beauty"),
		categorizedProduct(2, "Kitchen Knife", "kitchen-accessories"),
		categorizedProduct(3, "Red Lipstick", "beauty"),
	))

	result, err := uc.Browse(context.Background(), BrowseParams{Categories: []string{"beauty"}})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Products, 2)
	assert.Equal(t, int64(1), result.Products[0].ID)
	assert.Equal(t, int64(3), result.Products[1].ID)
}

func TestBrowseSupersededByNewerRequest(t *testing.T) {
	fake := newFakeCatalog(namedProduct(1, "A", "10", 4.0))
	uc := NewCatalogUsecase(testConfig(), fake)
	ctx := context.Background()

	// the second browse starts while the first one's fetch is in flight
	first := true
	fake.onList = func() {
		if !first {
			return
		}
		first = false
		_, err := uc.Browse(ctx, BrowseParams{})
		require.NoError(t, err)
	}

	_, err := uc.Browse(ctx, BrowseParams{})
	assert.ErrorIs(t, err, models.ErrSuperseded)
}

func TestBrowseFetchError(t *testing.T) {
	fake := newFakeCatalog()
	fake.listErr = fmt.Errorf("catalog unreachable")
	uc := NewCatalogUsecase(testConfig(), fake)

	_, err := uc.Browse(context.Background(), BrowseParams{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrSuperseded)
}
