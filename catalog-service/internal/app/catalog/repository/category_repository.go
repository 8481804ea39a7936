package repository

import (
	"context"
	"errors"
	"fmt"

	"productmanagement/catalog-service/internal/app/catalog/entity"
	"productmanagement/pkg/metrics"

	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository создает новый репозиторий категорий
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// GetAll получает все категории отсортированные по имени
// Результат кешируется в Redis через service layer
func (r *categoryRepository) GetAll(ctx context.Context) ([]entity.Category, error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "categories")

	categories := []entity.Category{}
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	timer.Done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	return categories, nil
}

// GetByID получает категорию по ID
// Используется для проверки ссылочной целостности перед записью товара
func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "categories")

	var category entity.Category
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		timer.Done(nil)
		return nil, ErrCategoryNotFound
	}
	timer.Done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}

	return &category, nil
}

// Count возвращает количество категорий (для первичного заполнения)
func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "categories")

	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Category{}).Count(&count).Error
	timer.Done(err)
	if err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}

	return count, nil
}

// CreateBatch вставляет категории одним INSERT, ID назначает БД
func (r *categoryRepository) CreateBatch(ctx context.Context, categories []entity.Category) error {
	if len(categories) == 0 {
		return nil
	}

	timer := metrics.NewDbTimer(metricsService, metrics.DbOpInsert, "categories")
	err := r.db.WithContext(ctx).Create(&categories).Error
	timer.Done(err)
	if err != nil {
		return fmt.Errorf("failed to create categories: %w", err)
	}

	return nil
}
