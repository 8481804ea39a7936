package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProductDTO - товар в ответах API, дополнен именем категории
type ProductDTO struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   int64           `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
}

// ProductInput - тело запросов POST /products и PUT /products/{id}
// PUT заменяет все четыре поля целиком
type ProductInput struct {
	Name        string          `json:"name" validate:"required,max=150"`
	Description string          `json:"description" validate:"required,max=500"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"categoryId"`
}

// Normalize обрезает пробелы в текстовых полях перед валидацией и сохранением
func (in *ProductInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
}

// ProductFilter - параметры GET /products
// Пустой Search и nil CategoryID означают отсутствие фильтра
type ProductFilter struct {
	Search     string
	CategoryID *int64
}

// FieldError - одна ошибка валидации поля
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse - тело ответа об ошибке
type ErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}
