package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"productmanagement/catalog-service/internal/app/catalog/entity"
	"productmanagement/catalog-service/internal/app/catalog/repository"
	"productmanagement/catalog-service/internal/app/catalog/util"
	"productmanagement/pkg/logger"
	"productmanagement/pkg/metrics"
)

// CatalogService обрабатывает бизнес-логику каталога товаров
// Координирует работу репозиториев, кеша категорий и публикации событий
type CatalogService struct {
	categoryRepo  repository.CategoryRepository
	productRepo   repository.ProductRepository
	cache         util.CategoryCache
	publisher     util.MessagePublisher
	categoriesTTL time.Duration
}

// NewCatalogService создает новый сервис каталога с внедрением зависимостей
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	cache util.CategoryCache,
	publisher util.MessagePublisher,
	categoriesTTL time.Duration,
) *CatalogService {
	return &CatalogService{
		categoryRepo:  categoryRepo,
		productRepo:   productRepo,
		cache:         cache,
		publisher:     publisher,
		categoriesTTL: categoriesTTL,
	}
}

// === CATEGORIES ===

// ListCategories возвращает все категории по имени с кешированием
// Ошибки кеша только логируются, ошибки БД возвращаются
func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	cached, err := s.cache.GetCategories(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Category cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	if err := s.cache.SetCategories(ctx, categories, s.categoriesTTL); err != nil {
		logger.Warn().Err(err).Msg("Category cache write failed")
	}

	return categories, nil
}

// InvalidateCategories сбрасывает кеш после изменения набора категорий
func (s *CatalogService) InvalidateCategories(ctx context.Context) {
	if err := s.cache.DeleteCategories(ctx); err != nil {
		logger.Warn().Err(err).Msg("Category cache invalidation failed")
	}
}

// === PRODUCTS ===

// ListProducts возвращает товары по фильтру в порядке возрастания ID
func (s *CatalogService) ListProducts(ctx context.Context, filter entity.ProductFilter) ([]entity.ProductDTO, error) {
	rows, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]entity.ProductDTO, 0, len(rows))
	for i := range rows {
		products = append(products, rows[i].ToDTO())
	}

	return products, nil
}

// GetProduct получает товар по ID с именем категории
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*entity.ProductDTO, error) {
	row, err := s.productRepo.GetWithCategory(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	dto := row.ToDTO()
	return &dto, nil
}

// CreateProduct проверяет входные данные и создает товар
// При ошибке валидации возвращает *ValidationError и ничего не сохраняет
func (s *CatalogService) CreateProduct(ctx context.Context, in *entity.ProductInput) (*entity.ProductDTO, error) {
	category, err := s.checkInput(ctx, in)
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price.Round(2),
		CategoryID:  in.CategoryID,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, newCategoryError()
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	metrics.RecordProductMutation("create")
	s.publishEvent(ctx, entity.EventProductCreated, product)

	return productDTO(product, category), nil
}

// UpdateProduct полностью заменяет поля товара
// Существование товара проверяется до валидации
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, in *entity.ProductInput) (*entity.ProductDTO, error) {
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	category, err := s.checkInput(ctx, in)
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price.Round(2),
		CategoryID:  in.CategoryID,
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			return nil, ErrProductNotFound
		case errors.Is(err, repository.ErrForeignKey):
			return nil, newCategoryError()
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	metrics.RecordProductMutation("update")
	s.publishEvent(ctx, entity.EventProductUpdated, product)

	return productDTO(product, category), nil
}

// DeleteProduct удаляет товар, false означает что товара не было
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	metrics.RecordProductMutation("delete")
	s.publishEvent(ctx, entity.EventProductDeleted, &entity.Product{ID: id})

	return true, nil
}

// checkInput нормализует и валидирует входные данные, затем проверяет категорию
func (s *CatalogService) checkInput(ctx context.Context, in *entity.ProductInput) (*entity.Category, error) {
	in.Normalize()

	if fieldErrors := ValidateProductInput(in); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	if in.CategoryID <= 0 {
		metrics.RecordValidationFailure("categoryId")
		return nil, newCategoryError()
	}

	category, err := s.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			metrics.RecordValidationFailure("categoryId")
			return nil, newCategoryError()
		}
		return nil, fmt.Errorf("failed to verify category: %w", err)
	}

	return category, nil
}

// publishEvent отправляет событие о товаре в Kafka
// Ошибка не влияет на результат операции, товар уже сохранен
func (s *CatalogService) publishEvent(ctx context.Context, eventType string, product *entity.Product) {
	event := entity.ProductEvent{
		EventType:  eventType,
		ProductID:  product.ID,
		Name:       product.Name,
		Price:      product.Price,
		CategoryID: product.CategoryID,
		Timestamp:  time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Warn().Err(err).Str("event_type", eventType).Msg("Failed to marshal product event")
		return
	}

	if err := s.publisher.PublishMessage(ctx, strconv.FormatInt(product.ID, 10), data); err != nil {
		logger.Warn().
			Err(err).
			Str("event_type", eventType).
			Int64("product_id", product.ID).
			Msg("Failed to publish product event")
	}
}

func productDTO(product *entity.Product, category *entity.Category) *entity.ProductDTO {
	return &entity.ProductDTO{
		ID:           product.ID,
		Name:         product.Name,
		Description:  product.Description,
		Price:        product.Price,
		CategoryID:   product.CategoryID,
		CategoryName: category.Name,
	}
}
