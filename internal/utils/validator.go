package utils

import (
	"github.com/go-playground/validator/v10"
	"reflect"
	"strings"
)

var Validate *validator.Validate

// InitValidator sets up the shared validator. Field names in errors use the
// json tag so they match the request document.
func InitValidator() {
	Validate = NewValidator()
}

func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
