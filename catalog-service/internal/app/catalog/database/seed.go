package database

import (
	"context"
	"fmt"

	"productmanagement/catalog-service/internal/app/catalog/entity"
	"productmanagement/catalog-service/internal/app/catalog/repository"
	"productmanagement/pkg/logger"
	"productmanagement/pkg/metrics"
)

// DefaultCategories - справочник категорий, создаваемый при первом запуске
var DefaultCategories = []string{"Electrónica", "Ropa", "Hogar"}

// Seed заполняет пустую таблицу категорий
// Возвращает true, если категории были добавлены
func Seed(ctx context.Context, categoryRepo repository.CategoryRepository) (bool, error) {
	count, err := categoryRepo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check categories: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	categories := make([]entity.Category, 0, len(DefaultCategories))
	for _, name := range DefaultCategories {
		categories = append(categories, entity.Category{Name: name})
	}

	if err := categoryRepo.CreateBatch(ctx, categories); err != nil {
		return false, fmt.Errorf("failed to seed categories: %w", err)
	}

	metrics.CatalogCategoriesSeeded.Add(float64(len(categories)))
	logger.Info().Int("count", len(categories)).Msg("Categories seeded")

	return true, nil
}
