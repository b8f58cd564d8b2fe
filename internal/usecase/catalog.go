package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/internal/repo/catalog"
	"github.com/nguyentranbao-ct/storefront/pkg/util"
)

type SortKey string

const (
	SortDefault    SortKey = "featured"
	SortPriceAsc   SortKey = "price_asc"
	SortPriceDesc  SortKey = "price_desc"
	SortRatingDesc SortKey = "rating_desc"
)

const defaultPageSize = 12

type BrowseParams struct {
	Search     string
	Categories []string
	Sort       SortKey
	Page       int
	PageSize   int
}

type BrowseResult struct {
	Products   []models.Product `json:"products"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// CatalogUsecase drives the product browsing view: it fetches a
// catalog page, applies client-side search filtering, sorting and
// pagination. A superseded fetch (a newer browse started while this
// one was in flight) is dropped instead of overwriting newer state.
type CatalogUsecase interface {
	Browse(ctx context.Context, params BrowseParams) (*BrowseResult, error)
	Product(ctx context.Context, id int64) (*models.Product, error)
}

type catalogUsecase struct {
	client    catalog.Client
	pageLimit int

	generation atomic.Uint64

	mu           sync.Mutex
	hasBrowsed   bool
	lastCriteria string
}

func NewCatalogUsecase(conf *config.Config, client catalog.Client) CatalogUsecase {
	return &catalogUsecase{
		client:    client,
		pageLimit: conf.Catalog.PageLimit,
	}
}

func (uc *catalogUsecase) Browse(ctx context.Context, params BrowseParams) (*BrowseResult, error) {
	if params.Sort == "" {
		params.Sort = SortDefault
	}
	if params.PageSize <= 0 {
		params.PageSize = defaultPageSize
	}
	if params.Page <= 0 {
		params.Page = 1
	}

	gen := uc.generation.Add(1)

	page, err := uc.client.ListProducts(ctx, uc.pageLimit, 0)
	if err != nil {
		return nil, err
	}

	// a newer browse has started while this fetch was in flight
	if uc.generation.Load() != gen {
		return nil, models.ErrSuperseded
	}

	categories := normalizeCategories(params.Categories)

	uc.mu.Lock()
	criteria := string(params.Sort) + "\x00" + strings.ToLower(params.Search) + "\x00" + strings.Join(categories, ",")
	// reset only against an actual previous browse, never on the first
	if uc.hasBrowsed && criteria != uc.lastCriteria {
		params.Page = 1
	}
	uc.hasBrowsed = true
	uc.lastCriteria = criteria
	uc.mu.Unlock()

	filtered := ApplyFilters(page.Products, params.Search, categories, params.Sort)
	totalPages := (len(filtered) + params.PageSize - 1) / params.PageSize

	return &BrowseResult{
		Products:   Paginate(filtered, params.PageSize, params.Page),
		Total:      len(filtered),
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (uc *catalogUsecase) Product(ctx context.Context, id int64) (*models.Product, error) {
	return uc.client.GetProduct(ctx, id)
}

// normalizeCategories lowercases, trims and sorts a category selection
// so equivalent selections compare equal.
func normalizeCategories(categories []string) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// ApplyFilters narrows products to those whose title contains the
// search text (case-insensitive) and whose category is in the selected
// set (empty selection matches all), then orders them by the sort key.
// Sorting is stable: equal keys keep their original relative order.
func ApplyFilters(products []models.Product, search string, categories []string, key SortKey) []models.Product {
	needle := strings.ToLower(strings.TrimSpace(search))
	selected := normalizeCategories(categories)

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if needle != "" && !strings.Contains(strings.ToLower(p.Title), needle) {
			continue
		}
		if len(selected) > 0 && !util.SliceIncludes(selected, strings.ToLower(p.Category)) {
			continue
		}
		filtered = append(filtered, p)
	}

	switch key {
	case SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price.LessThan(filtered[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price.GreaterThan(filtered[j].Price)
		})
	case SortRatingDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Rating > filtered[j].Rating
		})
	default:
		// insertion order
	}

	return filtered
}

// Paginate returns the 1-based page slice
// [(page-1)*size, page*size). Pages past the end are empty.
func Paginate(products []models.Product, pageSize, page int) []models.Product {
	if pageSize <= 0 || page <= 0 {
		return []models.Product{}
	}

	start := (page - 1) * pageSize
	if start >= len(products) {
		return []models.Product{}
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}
