package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"productmanagement/catalog-service/internal/app/catalog/entity"
	"productmanagement/catalog-service/internal/app/catalog/repository"
	"productmanagement/catalog-service/internal/app/catalog/repository/mocks"
	"productmanagement/catalog-service/internal/app/catalog/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Хелперы для создания тестового окружения

type testEnv struct {
	router       *gin.Engine
	categoryRepo *mocks.MockCategoryRepository
	productRepo  *mocks.MockProductRepository
	cache        *mocks.MockCategoryCache
	publisher    *mocks.MockMessagePublisher
}

func setupTestRouter(basePath string) *testEnv {
	env := &testEnv{
		categoryRepo: new(mocks.MockCategoryRepository),
		productRepo:  new(mocks.MockProductRepository),
		cache:        new(mocks.MockCategoryCache),
		publisher:    new(mocks.MockMessagePublisher),
	}

	catalogService := service.NewCatalogService(env.categoryRepo, env.productRepo, env.cache, env.publisher, time.Hour)
	catalogHandler := NewCatalogHandler(catalogService, basePath)
	env.router = SetupRoutes(catalogHandler, RouterConfig{BasePath: basePath, AllowOrigins: []string{"*"}})

	return env
}

func (env *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) entity.ErrorResponse {
	t.Helper()
	var resp entity.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func newTestRow(id int64) entity.ProductWithCategory {
	return entity.ProductWithCategory{
		Product: entity.Product{
			ID:          id,
			Name:        "Auriculares Bluetooth",
			Description: "Inalámbricos con cancelación de ruido",
			Price:       decimal.RequireFromString("79.90"),
			CategoryID:  1,
		},
		CategoryName: "Electrónica",
	}
}

func validBody() map[string]any {
	return map[string]any{
		"name":        "Camiseta básica",
		"description": "Algodón orgánico",
		"price":       19.99,
		"categoryId":  2,
	}
}

// ==================== Category Handler Tests ====================

func TestCatalogHandler_GetAllCategories_Success(t *testing.T) {
	// Arrange
	env := setupTestRouter("")
	categories := []entity.Category{{ID: 1, Name: "Electrónica"}, {ID: 3, Name: "Hogar"}, {ID: 2, Name: "Ropa"}}
	env.cache.On("GetCategories", mock.Anything).Return(categories, nil)

	// Act
	w := env.do(http.MethodGet, "/categories", nil)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Electrónica"},{"id":3,"name":"Hogar"},{"id":2,"name":"Ropa"}]`, w.Body.String())
}

func TestCatalogHandler_GetAllCategories_StoreError(t *testing.T) {
	env := setupTestRouter("")
	env.cache.On("GetCategories", mock.Anything).Return(nil, nil)
	env.categoryRepo.On("GetAll", mock.Anything).Return(nil, errors.New("connection refused"))

	w := env.do(http.MethodGet, "/categories", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to get categories", decodeError(t, w).Message)
}

// ==================== Product Query Handler Tests ====================

func TestCatalogHandler_GetAllProducts_WithFilters(t *testing.T) {
	env := setupTestRouter("")
	categoryID := int64(1)
	env.productRepo.On("List", mock.Anything, entity.ProductFilter{Search: "auri", CategoryID: &categoryID}).
		Return([]entity.ProductWithCategory{newTestRow(1)}, nil)

	w := env.do(http.MethodGet, "/products?search=auri&categoryId=1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{
		"id": 1,
		"name": "Auriculares Bluetooth",
		"description": "Inalámbricos con cancelación de ruido",
		"price": 79.9,
		"categoryId": 1,
		"categoryName": "Electrónica"
	}]`, w.Body.String())
	env.productRepo.AssertExpectations(t)
}

func TestCatalogHandler_GetAllProducts_EmptyArray(t *testing.T) {
	env := setupTestRouter("")
	env.productRepo.On("List", mock.Anything, entity.ProductFilter{}).Return([]entity.ProductWithCategory{}, nil)

	w := env.do(http.MethodGet, "/products", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestCatalogHandler_GetAllProducts_InvalidCategoryID(t *testing.T) {
	env := setupTestRouter("")

	w := env.do(http.MethodGet, "/products?categoryId=abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.productRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestCatalogHandler_GetProduct_Success(t *testing.T) {
	env := setupTestRouter("")
	row := newTestRow(5)
	env.productRepo.On("GetWithCategory", mock.Anything, int64(5)).Return(&row, nil)

	w := env.do(http.MethodGet, "/products/5", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var dto entity.ProductDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, int64(5), dto.ID)
	assert.Equal(t, "Electrónica", dto.CategoryName)
}

func TestCatalogHandler_GetProduct_NotFound(t *testing.T) {
	env := setupTestRouter("")
	env.productRepo.On("GetWithCategory", mock.Anything, int64(404)).Return(nil, repository.ErrProductNotFound)

	w := env.do(http.MethodGet, "/products/404", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCatalogHandler_GetProduct_NonIntegerID(t *testing.T) {
	env := setupTestRouter("")

	w := env.do(http.MethodGet, "/products/abc", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env.productRepo.AssertNotCalled(t, "GetWithCategory", mock.Anything, mock.Anything)
}

// ==================== Product Mutation Handler Tests ====================

func TestCatalogHandler_CreateProduct_Success(t *testing.T) {
	// Arrange
	env := setupTestRouter("/api")
	env.categoryRepo.On("GetByID", mock.Anything, int64(2)).Return(&entity.Category{ID: 2, Name: "Ropa"}, nil)
	env.productRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Product")).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.Product).ID = 42 }).
		Return(nil)
	env.publisher.On("PublishMessage", mock.Anything, "42", mock.Anything).Return(nil)

	// Act
	w := env.do(http.MethodPost, "/api/products", validBody())

	// Assert
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/products/42", w.Header().Get("Location"))
	assert.JSONEq(t, `{
		"id": 42,
		"name": "Camiseta básica",
		"description": "Algodón orgánico",
		"price": 19.99,
		"categoryId": 2,
		"categoryName": "Ropa"
	}`, w.Body.String())
	env.productRepo.AssertExpectations(t)
	env.publisher.AssertExpectations(t)
}

func TestCatalogHandler_CreateProduct_ValidationError(t *testing.T) {
	env := setupTestRouter("")
	body := validBody()
	body["name"] = ""
	body["price"] = 0

	w := env.do(http.MethodPost, "/products", body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "Name is required", resp.Message)
	assert.Equal(t, []entity.FieldError{
		{Field: "name", Message: "Name is required"},
		{Field: "price", Message: "Price must be greater than 0"},
	}, resp.Errors)
	env.productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogHandler_CreateProduct_UnknownCategory(t *testing.T) {
	env := setupTestRouter("")
	body := validBody()
	body["categoryId"] = 999
	env.categoryRepo.On("GetByID", mock.Anything, int64(999)).Return(nil, repository.ErrCategoryNotFound)

	w := env.do(http.MethodPost, "/products", body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "Category does not exist", resp.Message)
	assert.Equal(t, "categoryId", resp.Errors[0].Field)
}

func TestCatalogHandler_CreateProduct_InvalidJSON(t *testing.T) {
	env := setupTestRouter("")

	w := env.do(http.MethodPost, "/products", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", decodeError(t, w).Message)
}

func TestCatalogHandler_UpdateProduct_Success(t *testing.T) {
	env := setupTestRouter("")
	env.productRepo.On("GetByID", mock.Anything, int64(7)).Return(&entity.Product{ID: 7}, nil)
	env.categoryRepo.On("GetByID", mock.Anything, int64(2)).Return(&entity.Category{ID: 2, Name: "Ropa"}, nil)
	env.productRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Product")).Return(nil)
	env.publisher.On("PublishMessage", mock.Anything, "7", mock.Anything).Return(nil)

	w := env.do(http.MethodPut, "/products/7", validBody())

	require.Equal(t, http.StatusOK, w.Code)
	var dto entity.ProductDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, int64(7), dto.ID)
	assert.Equal(t, "Camiseta básica", dto.Name)
}

func TestCatalogHandler_UpdateProduct_NotFound(t *testing.T) {
	env := setupTestRouter("")
	env.productRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, repository.ErrProductNotFound)

	w := env.do(http.MethodPut, "/products/404", validBody())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCatalogHandler_UpdateProduct_ValidationError(t *testing.T) {
	env := setupTestRouter("")
	body := validBody()
	body["description"] = "   "
	env.productRepo.On("GetByID", mock.Anything, int64(7)).Return(&entity.Product{ID: 7}, nil)

	w := env.do(http.MethodPut, "/products/7", body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Description is required", decodeError(t, w).Message)
	env.productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCatalogHandler_DeleteProduct_Success(t *testing.T) {
	env := setupTestRouter("")
	env.productRepo.On("Delete", mock.Anything, int64(3)).Return(nil)
	env.publisher.On("PublishMessage", mock.Anything, "3", mock.Anything).Return(nil)

	w := env.do(http.MethodDelete, "/products/3", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestCatalogHandler_DeleteProduct_NotFound(t *testing.T) {
	env := setupTestRouter("")
	env.productRepo.On("Delete", mock.Anything, int64(3)).Return(repository.ErrProductNotFound)

	w := env.do(http.MethodDelete, "/products/3", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCatalogHandler_DeleteProduct_StoreError(t *testing.T) {
	env := setupTestRouter("")
	env.productRepo.On("Delete", mock.Anything, int64(3)).Return(errors.New("connection reset"))

	w := env.do(http.MethodDelete, "/products/3", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to delete product", decodeError(t, w).Message)
}

// ==================== Router Tests ====================

func TestRouter_Health(t *testing.T) {
	env := setupTestRouter("/api")

	w := env.do(http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"catalog-service"}`, w.Body.String())
}

func TestRouter_BasePathRequired(t *testing.T) {
	env := setupTestRouter("/api")

	w := env.do(http.MethodGet, "/products", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_CORSAllowsAnyOrigin(t *testing.T) {
	env := setupTestRouter("")

	req := httptest.NewRequest(http.MethodOptions, "/products", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsConfig_ExplicitOrigins(t *testing.T) {
	cfg := corsConfig([]string{"https://admin.example.com"})

	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"https://admin.example.com"}, cfg.AllowOrigins)
}
