package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const messageRequired = "The message field is required."

// requestValidator checks request structs after they have been normalised,
// reporting fields by their JSON name.
var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationErrors turns binding errors into per-field messages keyed by
// the field name.
func validationErrors(err error) gin.H {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return gin.H{"body": err.Error()}
	}

	out := gin.H{}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = fmt.Sprintf("The %s field is required.", field)
		case "max":
			out[field] = fmt.Sprintf("The %s field must not be greater than %s characters.", field, fe.Param())
		case "len":
			out[field] = fmt.Sprintf("The %s field must be %s characters.", field, fe.Param())
		default:
			out[field] = fmt.Sprintf("The %s field is invalid.", field)
		}
	}
	return out
}
