package validate

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct проверяет теги `validate` на полях запроса.
func Struct(v any) error {
	return validate.Struct(v)
}
