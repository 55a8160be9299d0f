package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// bindingErrorMessage turns a request binding error into a readable
// message, flattening validator field errors into one line.
func bindingErrorMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "min":
			parts = append(parts, fe.Field()+" must have at least "+fe.Param()+" items")
		default:
			parts = append(parts, fe.Field()+" failed "+fe.Tag()+" validation")
		}
	}
	return strings.Join(parts, "; ")
}
