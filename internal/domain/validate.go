package domain

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validate checks the `binding` tags of v, the same tags gin evaluates when
// binding a request, so services enforce identical rules when called directly.
func Validate(v any) error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.SetTagName("binding")
		RegisterJSONTagNames(validate)
	})
	if err := validate.Struct(v); err != nil {
		return NewValidationError(err)
	}
	return nil
}

// RegisterJSONTagNames makes field errors report the JSON name of a field.
func RegisterJSONTagNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
}
