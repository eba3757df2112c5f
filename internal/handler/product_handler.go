package handler

import (
	"net/http"
	"strconv"

	"github.com/iamsashka/Kursach/internal/middleware"
	"github.com/iamsashka/Kursach/internal/model"
	"github.com/iamsashka/Kursach/internal/repository"
	"github.com/iamsashka/Kursach/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ProductRequest defines the product creation/update payload
type ProductRequest struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	StockQuantity   int             `json:"stock_quantity"`
	Sizes           string          `json:"sizes"`
	CategoryID      uint            `json:"category_id"`
	BrandID         uint            `json:"brand_id"`
	TargetAudience  string          `json:"target_audience"`
	CountryOfOrigin string          `json:"country_of_origin"`
	Images          []string        `json:"images"`
	Colors          []ColorRequest  `json:"colors"`
	Tags            []string        `json:"tags"`
}

// ColorRequest is one color option in a product payload
type ColorRequest struct {
	Name    string `json:"name"`
	HexCode string `json:"hex_code"`
}

// ProductHandler exposes catalog browsing and product management
type ProductHandler struct {
	products *service.ProductService
}

// NewProductHandler creates a product handler
func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List handles the catalog listing with its filter set
func (h *ProductHandler) List(c echo.Context) error {
	filter := catalogFilterFromQuery(c)

	products, total, err := h.products.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, paginated(products, filter.Page, filter.PageSize, total))
}

// Get returns one product and counts the view
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	product, err := h.products.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Create adds a catalog item
func (h *ProductHandler) Create(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Name == "" || !req.Price.IsPositive() || req.CategoryID == 0 || req.BrandID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, positive price, category_id and brand_id are required"})
	}

	product := productFromRequest(&req)
	if err := h.products.Create(c.Request().Context(), middleware.EmailFromContext(c), product); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

// Update rewrites a catalog item
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Name == "" || !req.Price.IsPositive() || req.CategoryID == 0 || req.BrandID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, positive price, category_id and brand_id are required"})
	}

	product := productFromRequest(&req)
	product.ID = id
	if err := h.products.Update(c.Request().Context(), middleware.EmailFromContext(c), product); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Delete archives a product
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if err := h.products.SoftDelete(c.Request().Context(), middleware.EmailFromContext(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product archived"})
}

// Restore brings an archived product back
func (h *ProductHandler) Restore(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if err := h.products.Restore(c.Request().Context(), middleware.EmailFromContext(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product restored"})
}

// Archived lists soft-deleted products
func (h *ProductHandler) Archived(c echo.Context) error {
	page, pageSize := pageParams(c)

	products, total, err := h.products.ListArchived(c.Request().Context(), page, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, paginated(products, page, pageSize, total))
}

func productFromRequest(req *ProductRequest) *model.Product {
	product := &model.Product{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		OriginalPrice:   req.OriginalPrice,
		StockQuantity:   req.StockQuantity,
		Sizes:           req.Sizes,
		CategoryID:      req.CategoryID,
		BrandID:         req.BrandID,
		TargetAudience:  req.TargetAudience,
		CountryOfOrigin: req.CountryOfOrigin,
	}
	for i, url := range req.Images {
		product.Images = append(product.Images, model.ProductImage{URL: url, Position: i})
	}
	for _, color := range req.Colors {
		product.Colors = append(product.Colors, model.ProductColor{Name: color.Name, HexCode: color.HexCode})
	}
	for _, tag := range req.Tags {
		product.Tags = append(product.Tags, model.ProductTag{Tag: tag})
	}
	return product
}

func catalogFilterFromQuery(c echo.Context) repository.CatalogFilter {
	filter := repository.CatalogFilter{
		Color:           c.QueryParam("color"),
		Size:            c.QueryParam("size"),
		CountryOfOrigin: c.QueryParam("country"),
		TargetAudience:  c.QueryParam("audience"),
		Tag:             c.QueryParam("tag"),
		Query:           c.QueryParam("q"),
		SortBy:          c.QueryParam("sort_by"),
		SortDir:         c.QueryParam("sort_dir"),
	}
	filter.Page, filter.PageSize = pageParams(c)

	if raw := c.QueryParam("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			categoryID := uint(id)
			filter.CategoryID = &categoryID
		}
	}
	if raw := c.QueryParam("brand_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			brandID := uint(id)
			filter.BrandID = &brandID
		}
	}
	if raw := c.QueryParam("price_min"); raw != "" {
		if min, err := decimal.NewFromString(raw); err == nil {
			filter.PriceMin = &min
		}
	}
	if raw := c.QueryParam("price_max"); raw != "" {
		if max, err := decimal.NewFromString(raw); err == nil {
			filter.PriceMax = &max
		}
	}
	if raw := c.QueryParam("on_sale"); raw != "" {
		if onSale, err := strconv.ParseBool(raw); err == nil {
			filter.OnSale = onSale
		}
	}
	return filter
}
