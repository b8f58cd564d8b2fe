package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/events"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/internal/repo/store"
)

// CartUsecase owns the cart lines. Every mutation synchronously
// persists the full collection before returning.
type CartUsecase interface {
	Items(ctx context.Context) ([]models.CartLine, error)
	// AddItem merges into an existing line for the same product id,
	// summing quantities, or appends a new line.
	AddItem(ctx context.Context, product models.Product, quantity int) error
	// UpdateQuantity replaces a line's quantity. Below the floor of 1
	// the call is a no-op, unless remove-on-zero is configured.
	UpdateQuantity(ctx context.Context, productID int64, quantity int) error
	// RemoveItem deletes the line unconditionally, regardless of
	// quantity. Removing an absent line is a no-op.
	RemoveItem(ctx context.Context, productID int64) error
	Clear(ctx context.Context) error
	Summary(ctx context.Context) (*models.CartSummary, error)
}

type cartUsecase struct {
	store    store.Store
	notifier Notifier
	events   events.Publisher

	freeShippingThreshold decimal.Decimal
	flatShippingFee       decimal.Decimal
	removeOnZero          bool

	// serializes load-modify-save cycles within this process
	mu sync.Mutex
}

func NewCartUsecase(conf *config.Config, st store.Store, notifier Notifier, publisher events.Publisher) CartUsecase {
	return &cartUsecase{
		store:                 st,
		notifier:              notifier,
		events:                publisher,
		freeShippingThreshold: conf.Cart.FreeShippingThreshold,
		flatShippingFee:       conf.Cart.FlatShippingFee,
		removeOnZero:          conf.Cart.RemoveOnZero,
	}
}

func (uc *cartUsecase) load(ctx context.Context) ([]models.CartLine, error) {
	data, err := uc.store.Load(ctx, store.KeyCart)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return lines, nil
}

func (uc *cartUsecase) save(ctx context.Context, lines []models.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := uc.store.Save(ctx, store.KeyCart, data); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

func (uc *cartUsecase) Items(ctx context.Context) ([]models.CartLine, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.load(ctx)
}

func (uc *cartUsecase) AddItem(ctx context.Context, product models.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	if err := product.Validate(); err != nil {
		return err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	lines, err := uc.load(ctx)
	if err != nil {
		return err
	}

	merged := false
	for i := range lines {
		if lines[i].Product.ID == product.ID {
			lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, models.CartLine{Product: product, Quantity: quantity})
	}

	if err := uc.save(ctx, lines); err != nil {
		return err
	}

	uc.notifier.Notify(fmt.Sprintf("%s added to cart", product.Title), models.NotificationSuccess, models.IconCart)
	uc.events.Publish(ctx, events.EventCartItemAdded, map[string]any{
		"product_id": product.ID,
		"quantity":   quantity,
	})
	return nil
}

func (uc *cartUsecase) UpdateQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		if uc.removeOnZero {
			return uc.RemoveItem(ctx, productID)
		}
		return nil
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	lines, err := uc.load(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range lines {
		if lines[i].Product.ID == productID {
			lines[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return models.ErrNotFound
	}

	if err := uc.save(ctx, lines); err != nil {
		return err
	}

	uc.events.Publish(ctx, events.EventCartQuantityUpdated, map[string]any{
		"product_id": productID,
		"quantity":   quantity,
	})
	return nil
}

func (uc *cartUsecase) RemoveItem(ctx context.Context, productID int64) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	lines, err := uc.load(ctx)
	if err != nil {
		return err
	}

	var removed *models.CartLine
	kept := lines[:0]
	for _, line := range lines {
		if line.Product.ID == productID {
			removed = &line
			continue
		}
		kept = append(kept, line)
	}
	if removed == nil {
		return nil
	}

	if err := uc.save(ctx, kept); err != nil {
		return err
	}

	uc.notifier.Notify(fmt.Sprintf("%s removed from cart", removed.Product.Title), models.NotificationInfo, models.IconCart)
	uc.events.Publish(ctx, events.EventCartItemRemoved, map[string]any{
		"product_id": productID,
	})
	return nil
}

func (uc *cartUsecase) Clear(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.save(ctx, []models.CartLine{}); err != nil {
		return err
	}

	uc.events.Publish(ctx, events.EventCartCleared, nil)
	return nil
}

// Summary recomputes the derived totals from the current lines on
// every call; nothing is cached.
func (uc *cartUsecase) Summary(ctx context.Context) (*models.CartSummary, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	lines, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}

	summary := &models.CartSummary{
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
	}
	for _, line := range lines {
		qty := decimal.NewFromInt(int64(line.Quantity))
		summary.ItemCount += line.Quantity
		summary.Subtotal = summary.Subtotal.Add(line.Product.Price.Mul(qty))
		summary.Discount = summary.Discount.Add(line.Savings())
	}

	switch {
	// an empty cart ships nothing, so it owes nothing
	case summary.ItemCount == 0:
		summary.ShippingFee = decimal.Zero
	case summary.Subtotal.GreaterThan(uc.freeShippingThreshold):
		summary.ShippingFee = decimal.Zero
	default:
		summary.ShippingFee = uc.flatShippingFee
	}
	summary.Total = summary.Subtotal.Add(summary.ShippingFee)

	return summary, nil
}
