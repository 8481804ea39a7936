package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"productmanagement/catalog-service/internal/app/catalog/entity"
	"productmanagement/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	msgPriceNotPositive = "Price must be greater than 0"
	msgPriceTooLarge    = "Price must be less than 10000000000000000"
	msgCategoryNotExist = "Category does not exist"
)

// maxPrice - верхняя граница NUMERIC(18,2)
var maxPrice = decimal.New(1, 16)

// fieldLabels - человекочитаемые имена полей для сообщений
var fieldLabels = map[string]string{
	"name":        "Name",
	"description": "Description",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// В ошибках используются имена полей из JSON
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateProductInput проверяет структуру входных данных товара
// Вызывается после Normalize; существование категории проверяет сервис
func ValidateProductInput(in *entity.ProductInput) []entity.FieldError {
	var fieldErrors []entity.FieldError

	if err := validate.Struct(in); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return []entity.FieldError{{Field: "", Message: err.Error()}}
		}
		for _, fe := range validationErrors {
			fieldErrors = append(fieldErrors, entity.FieldError{
				Field:   fe.Field(),
				Message: formatFieldError(fe),
			})
		}
	}

	// Проверяется цена в том виде, в каком она будет сохранена (2 знака)
	price := in.Price.Round(2)
	switch {
	case !price.IsPositive():
		fieldErrors = append(fieldErrors, entity.FieldError{Field: "price", Message: msgPriceNotPositive})
	case price.GreaterThanOrEqual(maxPrice):
		fieldErrors = append(fieldErrors, entity.FieldError{Field: "price", Message: msgPriceTooLarge})
	}

	for _, fe := range fieldErrors {
		metrics.RecordValidationFailure(fe.Field)
	}

	return fieldErrors
}

func formatFieldError(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}
