package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/models"
)

type productDoc struct {
	ID                 int64   `json:"id"`
	Title              string  `json:"title"`
	Category           string  `json:"category"`
	Price              float64 `json:"price"`
	DiscountPercentage float64 `json:"discountPercentage"`
	Rating             float64 `json:"rating"`
	Stock              int     `json:"stock"`
}

func newCatalogServer(t *testing.T, products []productDoc) *httptest.Server {
	t.Helper()

	byID := map[int64]productDoc{}
	for _, p := range products {
		byID[p.ID] = p
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		rest := strings.TrimPrefix(r.URL.Path, "/products")
		if rest == "" || rest == "/" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"products": products,
				"total":    len(products),
				"skip":     0,
				"limit":    len(products),
			})
			return
		}

		id, err := strconv.ParseInt(strings.TrimPrefix(rest, "/"), 10, 64)
		if err != nil {
			http.Error(w, `{"message":"bad id"}`, http.StatusBadRequest)
			return
		}
		p, ok := byID[id]
		if !ok {
			http.Error(w, `{"message":"Product not found"}`, http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(p)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClientForTest(t *testing.T, baseURL string) Client {
	t.Helper()
	return NewClient(&config.Config{
		Catalog: config.CatalogConfig{
			BaseURL:            baseURL + "/products",
			Timeout:            5 * time.Second,
			PageLimit:          100,
			HydrateConcurrency: 2,
		},
	})
}

func TestListProducts(t *testing.T) {
	srv := newCatalogServer(t, []productDoc{
		{ID: 1, Title: "Essence Mascara", Category: "beauty", Price: 9.99, DiscountPercentage: 7.17, Rating: 4.94, Stock: 5},
		{ID: 2, Title: "Powder Canister", Category: "beauty", Price: 14.99, Rating: 3.82, Stock: 25},
	})
	client := newClientForTest(t, srv.URL)

	result, err := client.ListProducts(context.Background(), 30, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Products, 2)
	assert.Equal(t, "Essence Mascara", result.Products[0].Title)
	assert.Equal(t, "9.99", result.Products[0].Price.String())
}

func TestListProductsDropsMalformedRecords(t *testing.T) {
	srv := newCatalogServer(t, []productDoc{
		{ID: 1, Title: "Good", Price: 9.99, Rating: 4.5, Stock: 5},
		{ID: 2, Title: "", Price: 14.99, Rating: 3.8, Stock: 1},   // missing title
		{ID: 3, Title: "Bad", Price: -1, Rating: 4.0, Stock: 1},   // negative price
		{ID: 4, Title: "Worse", Price: 5, Rating: 9.9, Stock: 1},  // rating out of range
		{ID: 5, Title: "Also Good", Price: 5, Rating: 5, Stock: 0},
	})
	client := newClientForTest(t, srv.URL)

	result, err := client.ListProducts(context.Background(), 30, 0)
	require.NoError(t, err)
	require.Len(t, result.Products, 2)
	assert.Equal(t, int64(1), result.Products[0].ID)
	assert.Equal(t, int64(5), result.Products[1].ID)
}

func TestGetProduct(t *testing.T) {
	srv := newCatalogServer(t, []productDoc{
		{ID: 7, Title: "Red Lipstick", Price: 12.99, Rating: 4.2, Stock: 90},
	})
	client := newClientForTest(t, srv.URL)

	product, err := client.GetProduct(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), product.ID)
	assert.Equal(t, "Red Lipstick", product.Title)
}

func TestGetProductNotFound(t *testing.T) {
	srv := newCatalogServer(t, nil)
	client := newClientForTest(t, srv.URL)

	_, err := client.GetProduct(context.Background(), 404)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetProductsPreservesOrderAndSkipsUnknown(t *testing.T) {
	srv := newCatalogServer(t, []productDoc{
		{ID: 1, Title: "One", Price: 1, Rating: 4, Stock: 1},
		{ID: 2, Title: "Two", Price: 2, Rating: 4, Stock: 1},
		{ID: 3, Title: "Three", Price: 3, Rating: 4, Stock: 1},
	})
	client := newClientForTest(t, srv.URL)

	products, err := client.GetProducts(context.Background(), []int64{3, 99, 1, 2})
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, int64(3), products[0].ID)
	assert.Equal(t, int64(1), products[1].ID)
	assert.Equal(t, int64(2), products[2].ID)
}

func TestGetProductsBoundedConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int64

	docs := make([]productDoc, 0, 20)
	ids := make([]int64, 0, 20)
	for i := int64(1); i <= 20; i++ {
		docs = append(docs, productDoc{ID: i, Title: "P", Price: 1, Rating: 4, Stock: 1})
		ids = append(ids, i)
	}

	srv := newCatalogServer(t, docs)
	base := srv.Config.Handler
	srv.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		base.ServeHTTP(w, r)
	})

	client := newClientForTest(t, srv.URL)
	products, err := client.GetProducts(context.Background(), ids)
	require.NoError(t, err)
	assert.Len(t, products, 20)
	assert.LessOrEqual(t, peak.Load(), int64(2), "hydration exceeded the configured concurrency limit")
}

func TestGetProductsEmpty(t *testing.T) {
	srv := newCatalogServer(t, nil)
	client := newClientForTest(t, srv.URL)

	products, err := client.GetProducts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, products)
}
