package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/internal/usecase"
)

type CartController interface {
	GetCart(c echo.Context) error
	AddItem(c echo.Context) error
	UpdateQuantity(c echo.Context) error
	RemoveItem(c echo.Context) error
	Clear(c echo.Context) error
}

type cartController struct {
	cartUsecase    usecase.CartUsecase
	catalogUsecase usecase.CatalogUsecase
}

func NewCartController(cartUsecase usecase.CartUsecase, catalogUsecase usecase.CatalogUsecase) CartController {
	return &cartController{
		cartUsecase:    cartUsecase,
		catalogUsecase: catalogUsecase,
	}
}

type cartResponse struct {
	Lines   []models.CartLine   `json:"lines"`
	Summary *models.CartSummary `json:"summary"`
}

func (h *cartController) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	lines, err := h.cartUsecase.Items(ctx)
	if err != nil {
		return httpError(err)
	}
	if lines == nil {
		lines = []models.CartLine{}
	}

	summary, err := h.cartUsecase.Summary(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, cartResponse{
		Lines:   lines,
		Summary: summary,
	})
}

type addItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"omitempty,gte=1"`
}

func (h *cartController) AddItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ctx := c.Request().Context()

	// snapshot the product record into the cart line
	product, err := h.catalogUsecase.Product(ctx, req.ProductID)
	if err != nil {
		return httpError(err)
	}

	if err := h.cartUsecase.AddItem(ctx, *product, req.Quantity); err != nil {
		return httpError(err)
	}
	return h.GetCart(c)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *cartController) UpdateQuantity(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || productID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	if err := h.cartUsecase.UpdateQuantity(ctx, productID, req.Quantity); err != nil {
		return httpError(err)
	}
	return h.GetCart(c)
}

func (h *cartController) RemoveItem(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || productID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	ctx := c.Request().Context()
	if err := h.cartUsecase.RemoveItem(ctx, productID); err != nil {
		return httpError(err)
	}
	return h.GetCart(c)
}

func (h *cartController) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.cartUsecase.Clear(ctx); err != nil {
		return httpError(err)
	}
	return h.GetCart(c)
}
