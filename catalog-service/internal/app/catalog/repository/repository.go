package repository

import (
	"context"
	"errors"

	"productmanagement/catalog-service/internal/app/catalog/entity"

	"github.com/jackc/pgx/v5/pgconn"
)

// metricsService - метка service для метрик БД
const metricsService = "catalog-service"

// pgForeignKeyViolation - SQLSTATE foreign_key_violation
const pgForeignKeyViolation = "23503"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrForeignKey       = errors.New("foreign key violation")
)

type CategoryRepository interface {
	GetAll(ctx context.Context) ([]entity.Category, error)
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, categories []entity.Category) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetWithCategory(ctx context.Context, id int64) (*entity.ProductWithCategory, error)
	List(ctx context.Context, filter entity.ProductFilter) ([]entity.ProductWithCategory, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
}

// isForeignKeyViolation проверяет ошибку Postgres через pgconn.PgError
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
