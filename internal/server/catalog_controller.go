package server

import (
	"net/http"
	"strconv"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/internal/usecase"
	"github.com/nguyentranbao-ct/storefront/pkg/util"
)

type CatalogController interface {
	ListProducts(c echo.Context) error
	GetProduct(c echo.Context) error
}

type catalogController struct {
	catalogUsecase  usecase.CatalogUsecase
	cartUsecase     usecase.CartUsecase
	wishlistUsecase usecase.WishlistUsecase
}

func NewCatalogController(
	catalogUsecase usecase.CatalogUsecase,
	cartUsecase usecase.CartUsecase,
	wishlistUsecase usecase.WishlistUsecase,
) CatalogController {
	return &catalogController{
		catalogUsecase:  catalogUsecase,
		cartUsecase:     cartUsecase,
		wishlistUsecase: wishlistUsecase,
	}
}

type browseRequest struct {
	Search     string   `query:"search"`
	Categories []string `query:"category"`
	Sort       string   `query:"sort" validate:"omitempty,oneof=featured price_asc price_desc rating_desc"`
	Page       int      `query:"page" validate:"omitempty,gte=1"`
	PageSize   int      `query:"page_size" validate:"omitempty,gte=1,lte=100"`
}

// annotatedProduct decorates a product with the viewer's cart and
// wishlist membership so the UI can render its affordances.
type annotatedProduct struct {
	models.Product
	InCart     bool `json:"in_cart"`
	Wishlisted bool `json:"wishlisted"`
}

type browseResponse struct {
	Products   []annotatedProduct `json:"products"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

func (h *catalogController) ListProducts(c echo.Context) error {
	var req browseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	result, err := h.catalogUsecase.Browse(ctx, usecase.BrowseParams{
		Search:     req.Search,
		Categories: req.Categories,
		Sort:       usecase.SortKey(req.Sort),
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		return httpError(err)
	}

	annotated, err := h.annotate(c, result.Products)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, browseResponse{
		Products:   annotated,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	})
}

func (h *catalogController) GetProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	ctx := c.Request().Context()
	product, err := h.catalogUsecase.Product(ctx, id)
	if err != nil {
		return httpError(err)
	}

	annotated, err := h.annotate(c, []models.Product{*product})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, annotated[0])
}

func (h *catalogController) annotate(c echo.Context, products []models.Product) ([]annotatedProduct, error) {
	ctx := c.Request().Context()

	lines, err := h.cartUsecase.Items(ctx)
	if err != nil {
		return nil, err
	}
	inCart := make(map[int64]bool, len(lines))
	for _, line := range lines {
		inCart[line.Product.ID] = true
	}

	wishlistIDs, err := h.wishlistUsecase.IDs(ctx)
	if err != nil {
		// annotation is cosmetic, keep serving products
		log.Warnw(ctx, "load wishlist for annotation", "error", err)
	}
	wishlisted := make(map[int64]bool, len(wishlistIDs))
	for _, id := range wishlistIDs {
		wishlisted[id] = true
	}

	return util.ConvertList(products, func(p models.Product) annotatedProduct {
		return annotatedProduct{
			Product:    p,
			InCart:     inCart[p.ID],
			Wishlisted: wishlisted[p.ID],
		}
	}), nil
}
