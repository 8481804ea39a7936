package util

import (
	"context"
	"time"

	"productmanagement/catalog-service/internal/app/catalog/entity"
)

// NopCache используется когда Redis выключен в конфигурации: всегда промах
type NopCache struct{}

func (NopCache) SetCategories(context.Context, []entity.Category, time.Duration) error { return nil }

func (NopCache) GetCategories(context.Context) ([]entity.Category, error) { return nil, nil }

func (NopCache) DeleteCategories(context.Context) error { return nil }

func (NopCache) Close() error { return nil }

// NopPublisher используется когда Kafka выключена в конфигурации
type NopPublisher struct{}

func (NopPublisher) PublishMessage(context.Context, string, []byte) error { return nil }

func (NopPublisher) Close() error { return nil }
