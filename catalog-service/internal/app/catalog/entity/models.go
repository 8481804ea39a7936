package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Цена уходит в JSON числом (19.99), а не строкой ("19.99")
	decimal.MarshalJSONWithoutQuotes = true
}

// Category представляет категорию товаров
// Создается только при первичном заполнении справочника
type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName указывает имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}

// Product представляет товар в каталоге (строка таблицы products)
type Product struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"type:varchar(150);not null"`
	Description string          `json:"description" gorm:"type:varchar(500);not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(18,2);not null"`
	CategoryID  int64           `json:"category_id" gorm:"not null;index"`
}

// TableName указывает имя таблицы для GORM
func (Product) TableName() string {
	return "products"
}

// ProductWithCategory содержит строку товара и имя категории из JOIN
type ProductWithCategory struct {
	Product
	CategoryName string `gorm:"column:category_name"`
}

// ToDTO преобразует строку из БД в объект ответа API
func (p *ProductWithCategory) ToDTO() ProductDTO {
	return ProductDTO{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
	}
}

// Типы событий о товарах в Kafka
const (
	EventProductCreated = "PRODUCT_CREATED"
	EventProductUpdated = "PRODUCT_UPDATED"
	EventProductDeleted = "PRODUCT_DELETED"
)

// ProductEvent представляет событие изменения продукта для Kafka
type ProductEvent struct {
	EventType  string          `json:"event_type"`
	ProductID  int64           `json:"product_id"`
	Name       string          `json:"name,omitempty"`
	Price      decimal.Decimal `json:"price"`
	CategoryID int64           `json:"category_id,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}
