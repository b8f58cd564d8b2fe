package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentranbao-ct/storefront/internal/events"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/internal/repo/catalog"
	"github.com/nguyentranbao-ct/storefront/internal/repo/store"
)

// fakeCatalog serves products from memory, listing them in the order
// they were registered.
type fakeCatalog struct {
	ordered  []models.Product
	products map[int64]models.Product
	listErr  error
	onList   func() // called before every list, for interleaving tests
}

func newFakeCatalog(products ...models.Product) *fakeCatalog {
	f := &fakeCatalog{products: map[int64]models.Product{}}
	for _, p := range products {
		f.ordered = append(f.ordered, p)
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeCatalog) ListProducts(_ context.Context, _, _ int) (*catalog.ListResult, error) {
	if f.onList != nil {
		f.onList()
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	all := append([]models.Product(nil), f.ordered...)
	return &catalog.ListResult{Products: all, Total: len(all), Limit: len(all)}, nil
}

func (f *fakeCatalog) GetProduct(_ context.Context, id int64) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}

func (f *fakeCatalog) GetProducts(ctx context.Context, ids []int64) ([]models.Product, error) {
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func newWishlistForTest(t *testing.T, products ...models.Product) WishlistUsecase {
	t.Helper()
	return NewWishlistUsecase(store.NewMemory(), newFakeCatalog(products...), NewNotifier(testConfig()), events.NewNoop())
}

func TestToggleAddsThenRemoves(t *testing.T) {
	ctx := context.Background()
	uc := newWishlistForTest(t, testProduct(1, "10.00", "0"))

	added, err := uc.Toggle(ctx, 1)
	require.NoError(t, err)
	assert.True(t, added)

	has, err := uc.Contains(ctx, 1)
	require.NoError(t, err)
	assert.True(t, has)

	added, err = uc.Toggle(ctx, 1)
	require.NoError(t, err)
	assert.False(t, added)

	has, err = uc.Contains(ctx, 1)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestToggleKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	uc := newWishlistForTest(t)

	for _, id := range []int64{3, 1, 2} {
		_, err := uc.Toggle(ctx, id)
		require.NoError(t, err)
	}

	ids, err := uc.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2}, ids)

	// removing the middle id keeps the rest in place
	_, err = uc.Toggle(ctx, 1)
	require.NoError(t, err)

	ids, err = uc.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2}, ids)
}

func TestToggleSucceedsWhenCatalogDown(t *testing.T) {
	ctx := context.Background()
	// no products registered: title resolution fails but the toggle
	// itself must still go through
	uc := newWishlistForTest(t)

	added, err := uc.Toggle(ctx, 99)
	require.NoError(t, err)
	assert.True(t, added)
}

func TestHydrate(t *testing.T) {
	ctx := context.Background()
	p1 := testProduct(1, "10.00", "0")
	p2 := testProduct(2, "5.00", "0")
	uc := newWishlistForTest(t, p1, p2)

	_, err := uc.Toggle(ctx, 2)
	require.NoError(t, err)
	_, err = uc.Toggle(ctx, 1)
	require.NoError(t, err)

	products, err := uc.Hydrate(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(2), products[0].ID)
	assert.Equal(t, int64(1), products[1].ID)
}

func TestHydrateEmpty(t *testing.T) {
	products, err := newWishlistForTest(t).Hydrate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestWishlistRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	fake := newFakeCatalog()
	conf := testConfig()

	uc := NewWishlistUsecase(st, fake, NewNotifier(conf), events.NewNoop())
	_, err := uc.Toggle(ctx, 7)
	require.NoError(t, err)
	_, err = uc.Toggle(ctx, 9)
	require.NoError(t, err)

	reloaded := NewWishlistUsecase(st, fake, NewNotifier(conf), events.NewNoop())
	ids, err := reloaded.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 9}, ids)
}
