package service

import (
	"errors"
	"strings"

	"productmanagement/catalog-service/internal/app/catalog/entity"
)

// ErrProductNotFound возвращается, если товара с таким ID нет
var ErrProductNotFound = errors.New("product not found")

// ValidationError - входные данные товара отклонены, ничего не сохранено
type ValidationError struct {
	Errors []entity.FieldError
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		messages = append(messages, fe.Message)
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

// Message возвращает первое сообщение для поля message ответа
func (e *ValidationError) Message() string {
	if len(e.Errors) == 0 {
		return "Validation failed"
	}
	return e.Errors[0].Message
}

func newCategoryError() *ValidationError {
	return &ValidationError{Errors: []entity.FieldError{{Field: "categoryId", Message: msgCategoryNotExist}}}
}
