package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var connIDPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

func init() {
	validate = validator.New()
	// conn_id enforces the business-key character class on request bodies.
	validate.RegisterValidation("conn_id", func(fl validator.FieldLevel) bool {
		return connIDPattern.MatchString(fl.Field().String())
	})
}

// ValidateStruct validates a request body against its struct tags.
func ValidateStruct(obj interface{}) error {
	return validate.Struct(obj)
}
