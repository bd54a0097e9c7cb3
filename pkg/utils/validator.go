package utils

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Custom validations
	v.RegisterValidation("future_date", validateFutureDate)
	v.RegisterValidation("supported_image", validateImageType)

	return &Validator{
		validate: v,
	}
}

func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// Event dates must parse as RFC 3339 and lie in the future.
func validateFutureDate(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return false
	}
	return parsed.After(time.Now())
}

func validateImageType(fl validator.FieldLevel) bool {
	mimeType := fl.Field().String()
	supportedTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	return supportedTypes[mimeType]
}
