package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	log "github.com/carousell/ct-go/pkg/logger/log_context"

	"github.com/nguyentranbao-ct/storefront/internal/events"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/internal/repo/catalog"
	"github.com/nguyentranbao-ct/storefront/internal/repo/store"
)

// WishlistUsecase owns the wishlist: a set of product ids with
// insertion order preserved for display.
type WishlistUsecase interface {
	IDs(ctx context.Context) ([]int64, error)
	Contains(ctx context.Context, productID int64) (bool, error)
	// Toggle adds the id when absent and removes it when present,
	// returning the resulting membership.
	Toggle(ctx context.Context, productID int64) (added bool, err error)
	// Hydrate expands the stored ids into full product records.
	Hydrate(ctx context.Context) ([]models.Product, error)
}

type wishlistUsecase struct {
	store    store.Store
	catalog  catalog.Client
	notifier Notifier
	events   events.Publisher

	mu sync.Mutex
}

func NewWishlistUsecase(st store.Store, catalogClient catalog.Client, notifier Notifier, publisher events.Publisher) WishlistUsecase {
	return &wishlistUsecase{
		store:    st,
		catalog:  catalogClient,
		notifier: notifier,
		events:   publisher,
	}
}

func (uc *wishlistUsecase) load(ctx context.Context) ([]int64, error) {
	data, err := uc.store.Load(ctx, store.KeyWishlist)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}

	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode wishlist: %w", err)
	}
	return ids, nil
}

func (uc *wishlistUsecase) save(ctx context.Context, ids []int64) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode wishlist: %w", err)
	}
	if err := uc.store.Save(ctx, store.KeyWishlist, data); err != nil {
		return fmt.Errorf("persist wishlist: %w", err)
	}
	return nil
}

func (uc *wishlistUsecase) IDs(ctx context.Context) ([]int64, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.load(ctx)
}

func (uc *wishlistUsecase) Contains(ctx context.Context, productID int64) (bool, error) {
	ids, err := uc.IDs(ctx)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == productID {
			return true, nil
		}
	}
	return false, nil
}

func (uc *wishlistUsecase) Toggle(ctx context.Context, productID int64) (bool, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	ids, err := uc.load(ctx)
	if err != nil {
		return false, err
	}

	added := true
	next := make([]int64, 0, len(ids)+1)
	for _, id := range ids {
		if id == productID {
			added = false
			continue
		}
		next = append(next, id)
	}
	if added {
		next = append(next, productID)
	}

	if err := uc.save(ctx, next); err != nil {
		return false, err
	}

	uc.notifier.Notify(uc.toggleMessage(ctx, productID, added), models.NotificationSuccess, models.IconHeart)
	uc.events.Publish(ctx, events.EventWishlistToggled, map[string]any{
		"product_id": productID,
		"added":      added,
	})
	return added, nil
}

// toggleMessage names the product when the catalog can resolve it,
// falling back to the bare id so the toggle never fails on a catalog
// hiccup.
func (uc *wishlistUsecase) toggleMessage(ctx context.Context, productID int64, added bool) string {
	action := "added to"
	if !added {
		action = "removed from"
	}

	product, err := uc.catalog.GetProduct(ctx, productID)
	if err != nil {
		log.Warnw(ctx, "resolve product title for notification", "product_id", productID, "error", err)
		return fmt.Sprintf("Product %d %s wishlist", productID, action)
	}
	return fmt.Sprintf("%s %s wishlist", product.Title, action)
}

func (uc *wishlistUsecase) Hydrate(ctx context.Context) ([]models.Product, error) {
	ids, err := uc.IDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	return uc.catalog.GetProducts(ctx, ids)
}
