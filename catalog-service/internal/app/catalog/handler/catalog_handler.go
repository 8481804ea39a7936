package handler

import (
	"errors"
	"net/http"
	"strconv"

	"productmanagement/catalog-service/internal/app/catalog/entity"
	"productmanagement/catalog-service/internal/app/catalog/service"
	"productmanagement/pkg/logger"

	"github.com/gin-gonic/gin"
)

// CatalogHandler обрабатывает HTTP запросы для каталога
type CatalogHandler struct {
	catalogService service.CatalogServiceInterface
	basePath       string
}

// NewCatalogHandler создает новый обработчик каталога
// basePath используется для заголовка Location
func NewCatalogHandler(catalogService service.CatalogServiceInterface, basePath string) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		basePath:       basePath,
	}
}

// === CATEGORIES HANDLERS ===

// GetAllCategories обрабатывает GET /categories
func (h *CatalogHandler) GetAllCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		h.internalError(c, err, "Failed to get categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

// === PRODUCTS HANDLERS ===

// GetAllProducts обрабатывает GET /products?search=&categoryId=
func (h *CatalogHandler) GetAllProducts(c *gin.Context) {
	filter := entity.ProductFilter{Search: c.Query("search")}

	if raw := c.Query("categoryId"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{Message: "Invalid categoryId"})
			return
		}
		filter.CategoryID = &categoryID
	}

	products, err := h.catalogService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.internalError(c, err, "Failed to get products")
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct обрабатывает GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			notFound(c)
			return
		}
		h.internalError(c, err, "Failed to get product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct обрабатывает POST /products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req entity.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Message: "Invalid request body"})
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		if respondValidation(c, err) {
			return
		}
		h.internalError(c, err, "Failed to create product")
		return
	}

	c.Header("Location", h.basePath+"/products/"+strconv.FormatInt(product.ID, 10))
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct обрабатывает PUT /products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	var req entity.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Message: "Invalid request body"})
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			notFound(c)
			return
		}
		if respondValidation(c, err) {
			return
		}
		h.internalError(c, err, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct обрабатывает DELETE /products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	deleted, err := h.catalogService.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		h.internalError(c, err, "Failed to delete product")
		return
	}
	if !deleted {
		notFound(c)
		return
	}

	c.Status(http.StatusNoContent)
}

// productID разбирает :id, нецелый ID считается несуществующим маршрутом (404)
func productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		notFound(c)
		return 0, false
	}
	return id, true
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, entity.ErrorResponse{Message: "Product not found"})
}

func respondValidation(c *gin.Context, err error) bool {
	var validationErr *service.ValidationError
	if !errors.As(err, &validationErr) {
		return false
	}

	c.JSON(http.StatusBadRequest, entity.ErrorResponse{
		Message: validationErr.Message(),
		Errors:  validationErr.Errors,
	})
	return true
}

func (h *CatalogHandler) internalError(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	logger.Error().
		Err(err).
		Str("request_id", c.GetString(logger.RequestIDKey)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg(message)
	c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Message: message})
}
