package service

import (
	"context"

	"productmanagement/catalog-service/internal/app/catalog/entity"
)

type CatalogServiceInterface interface {
	ListCategories(ctx context.Context) ([]entity.Category, error)
	InvalidateCategories(ctx context.Context)

	ListProducts(ctx context.Context, filter entity.ProductFilter) ([]entity.ProductDTO, error)
	GetProduct(ctx context.Context, id int64) (*entity.ProductDTO, error)
	CreateProduct(ctx context.Context, in *entity.ProductInput) (*entity.ProductDTO, error)
	UpdateProduct(ctx context.Context, id int64, in *entity.ProductInput) (*entity.ProductDTO, error)
	DeleteProduct(ctx context.Context, id int64) (bool, error)
}
