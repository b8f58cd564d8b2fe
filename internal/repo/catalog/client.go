// Package catalog reads product records from the external catalog
// service. Responses are validated here so the rest of the service can
// trust product shapes.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/carousell/ct-go/pkg/logger"
	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"

	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/pkg/util"
)

// ListResult is the list envelope returned by the catalog: products
// are wrapped under a "products" field next to paging metadata.
type ListResult struct {
	Products []models.Product `json:"products"`
	Total    int              `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
}

type Client interface {
	// ListProducts fetches one page using limit/skip pagination.
	ListProducts(ctx context.Context, limit, skip int) (*ListResult, error)
	// GetProduct fetches a single record, models.ErrNotFound when the
	// id is unknown upstream.
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	// GetProducts hydrates full records for a set of ids with bounded
	// concurrency. Unknown ids are skipped.
	GetProducts(ctx context.Context, ids []int64) ([]models.Product, error)
}

type client struct {
	http         *resty.Client
	hydrateLimit int
	log          *logger.Logger
}

func NewClient(conf *config.Config) Client {
	httpClient := util.NewRestyClient().
		SetBaseURL(conf.Catalog.BaseURL).
		SetTimeout(conf.Catalog.Timeout)

	hydrateLimit := conf.Catalog.HydrateConcurrency
	if hydrateLimit <= 0 {
		hydrateLimit = 1
	}

	return &client{
		http:         httpClient,
		hydrateLimit: hydrateLimit,
		log:          logger.MustNamed("catalog"),
	}
}

func (c *client) ListProducts(ctx context.Context, limit, skip int) (*ListResult, error) {
	if limit <= 0 {
		limit = 30
	}
	if skip < 0 {
		skip = 0
	}

	var result ListResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("limit", fmt.Sprint(limit)).
		SetQueryParam("skip", fmt.Sprint(skip)).
		SetResult(&result).
		Get("")
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list products: catalog returned status %d", resp.StatusCode())
	}

	// invalid records are dropped rather than failing the whole page
	valid := make([]models.Product, 0, len(result.Products))
	for _, p := range result.Products {
		if err := p.Validate(); err != nil {
			c.log.Warnw("dropping malformed product", "error", err)
			continue
		}
		valid = append(valid, p)
	}
	result.Products = valid

	return &result, nil
}

func (c *client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&product).
		Get(fmt.Sprintf("/%d", id))
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, models.ErrNotFound
	}
	if resp.IsError() {
		return nil, fmt.Errorf("get product %d: catalog returned status %d", id, resp.StatusCode())
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *client) GetProducts(ctx context.Context, ids []int64) ([]models.Product, error) {
	results := make([]*models.Product, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.hydrateLimit)
	for i, id := range ids {
		g.Go(func() error {
			product, err := c.GetProduct(ctx, id)
			if err != nil {
				if errors.Is(err, models.ErrNotFound) {
					c.log.Warnw("skipping unknown product", "product_id", id)
					return nil
				}
				return err
			}
			results[i] = product
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("hydrate products: %w", err)
	}

	// preserve the ids' order, minus the holes
	products := make([]models.Product, 0, len(ids))
	for _, p := range results {
		if p != nil {
			products = append(products, *p)
		}
	}
	return products, nil
}
