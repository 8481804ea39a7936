package util

import (
	"context"
	"time"

	"productmanagement/catalog-service/internal/app/catalog/entity"
)

// CategoryCache интерфейс кеша списка категорий
// nil без ошибки из GetCategories означает промах кеша
type CategoryCache interface {
	SetCategories(ctx context.Context, categories []entity.Category, ttl time.Duration) error
	GetCategories(ctx context.Context) ([]entity.Category, error)
	DeleteCategories(ctx context.Context) error
	Close() error
}

// MessagePublisher интерфейс для отправки событий о товарах (Kafka)
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// metricsService - метка service для метрик Redis и Kafka
const metricsService = "catalog-service"
