package repository

import (
	"context"
	"fmt"
	"strings"

	"productmanagement/catalog-service/internal/app/catalog/entity"
	"productmanagement/pkg/metrics"

	"gorm.io/gorm"
)

// likeEscaper экранирует метасимволы LIKE, поиск идет по подстроке буквально
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает новый репозиторий товаров
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// withCategory - базовый запрос товаров с именем категории через JOIN
func (r *productRepository) withCategory(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("products AS p").
		Select("p.id, p.name, p.description, p.price, p.category_id, c.name AS category_name").
		Joins("JOIN categories AS c ON c.id = p.category_id")
}

// Create создает новый товар, ID назначает БД
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpInsert, "products")
	err := r.db.WithContext(ctx).Create(product).Error
	timer.Done(err)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrForeignKey
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetByID получает строку товара по ID без категории
func (r *productRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "products")

	var products []entity.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&products).Error
	timer.Done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if len(products) == 0 {
		return nil, ErrProductNotFound
	}

	return &products[0], nil
}

// GetWithCategory получает товар с именем категории за один запрос
func (r *productRepository) GetWithCategory(ctx context.Context, id int64) (*entity.ProductWithCategory, error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "products")

	var rows []entity.ProductWithCategory
	err := r.withCategory(ctx).Where("p.id = ?", id).Limit(1).Scan(&rows).Error
	timer.Done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to get product with category: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrProductNotFound
	}

	return &rows[0], nil
}

// List возвращает товары с учетом фильтров, упорядоченные по ID
// Search ищется через ILIKE в name ИЛИ description, CategoryID - точное совпадение
// Оба фильтра объединяются через AND
func (r *productRepository) List(ctx context.Context, filter entity.ProductFilter) ([]entity.ProductWithCategory, error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "products")

	query := r.withCategory(ctx)

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(search) + "%"
		query = query.Where("(p.name ILIKE ? OR p.description ILIKE ?)", pattern, pattern)
	}

	if filter.CategoryID != nil {
		query = query.Where("p.category_id = ?", *filter.CategoryID)
	}

	rows := []entity.ProductWithCategory{}
	err := query.Order("p.id ASC").Scan(&rows).Error
	timer.Done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return rows, nil
}

// Update полностью заменяет name, description, price и category_id
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpUpdate, "products")

	result := r.db.WithContext(ctx).Model(&entity.Product{}).Where("id = ?", product.ID).Updates(map[string]interface{}{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"category_id": product.CategoryID,
	})
	timer.Done(result.Error)

	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return ErrForeignKey
		}
		return fmt.Errorf("failed to update product: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete удаляет товар (жесткое удаление)
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpDelete, "products")

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Product{})
	timer.Done(result.Error)

	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}
