package catalogclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound - сервер ответил 404
var ErrNotFound = errors.New("not found")

// APIError - ответ сервера не 2xx (кроме 404)
type APIError struct {
	StatusCode int
	Message    string
	Errors     []FieldError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog api: status %d: %s", e.StatusCode, e.Message)
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   int64           `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
}

// ProductInput - тело создания и полного обновления товара
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"categoryId"`
}

// MarshalJSON отправляет price числом, как его отдает сервер,
// независимо от глобального decimal.MarshalJSONWithoutQuotes
func (in ProductInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name        string      `json:"name"`
		Description string      `json:"description"`
		Price       json.Number `json:"price"`
		CategoryID  int64       `json:"categoryId"`
	}{
		Name:        in.Name,
		Description: in.Description,
		Price:       json.Number(in.Price.String()),
		CategoryID:  in.CategoryID,
	})
}

// Filter - параметры списка товаров, нулевые значения не передаются
type Filter struct {
	Search     string
	CategoryID int64
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

// Client клиент REST API каталога
// Список категорий загружается один раз и хранится до InvalidateCategories
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu         sync.Mutex
	categories []Category
}

// New создает клиент; baseURL включает префикс API, например http://host:8081/api
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Categories возвращает категории, при первом вызове загружая их с сервера
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.categories != nil {
		return c.categories, nil
	}

	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []Category{}
	}

	c.categories = categories
	return categories, nil
}

// InvalidateCategories сбрасывает сохраненный список категорий
func (c *Client) InvalidateCategories() {
	c.mu.Lock()
	c.categories = nil
	c.mu.Unlock()
}

func (c *Client) ListProducts(ctx context.Context, filter Filter) ([]Product, error) {
	query := url.Values{}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query.Set("search", search)
	}
	if filter.CategoryID != 0 {
		query.Set("categoryId", strconv.FormatInt(filter.CategoryID, 10))
	}

	path := "/products"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	products := []Product{}
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, productPath(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodPost, "/products", in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodPut, productPath(id), in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, productPath(id), nil, nil)
}

func productPath(id int64) string {
	return "/products/" + strconv.FormatInt(id, 10)
}

// do выполняет запрос и декодирует JSON ответа в out (если out не nil)
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var payload errorResponse
	if err := json.Unmarshal(data, &payload); err == nil && payload.Message != "" {
		apiErr.Message = payload.Message
		apiErr.Errors = payload.Errors
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
