package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/internal/usecase"
)

type WishlistController interface {
	GetWishlist(c echo.Context) error
	Toggle(c echo.Context) error
}

type wishlistController struct {
	wishlistUsecase usecase.WishlistUsecase
	cartUsecase     usecase.CartUsecase
}

func NewWishlistController(wishlistUsecase usecase.WishlistUsecase, cartUsecase usecase.CartUsecase) WishlistController {
	return &wishlistController{
		wishlistUsecase: wishlistUsecase,
		cartUsecase:     cartUsecase,
	}
}

type wishlistItem struct {
	models.Product
	InCart bool `json:"in_cart"`
}

func (h *wishlistController) GetWishlist(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.wishlistUsecase.Hydrate(ctx)
	if err != nil {
		return httpError(err)
	}

	lines, err := h.cartUsecase.Items(ctx)
	if err != nil {
		return httpError(err)
	}
	inCart := make(map[int64]bool, len(lines))
	for _, line := range lines {
		inCart[line.Product.ID] = true
	}

	items := make([]wishlistItem, 0, len(products))
	for _, p := range products {
		items = append(items, wishlistItem{
			Product: p,
			InCart:  inCart[p.ID],
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"products": items,
		"total":    len(items),
	})
}

type toggleRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

func (h *wishlistController) Toggle(c echo.Context) error {
	var req toggleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	added, err := h.wishlistUsecase.Toggle(ctx, req.ProductID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"product_id": req.ProductID,
		"added":      added,
	})
}
