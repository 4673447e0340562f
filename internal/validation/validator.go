// Package validation checks request payloads against their struct tags.
package validation

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	apperrors "kycdesk/internal/errors"
	"kycdesk/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// report json names rather than Go field names
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			return models.IsSupportedCurrency(fl.Field().String())
		})
	})
	return validate
}

// Validator collects field errors keyed by field name.
type Validator struct {
	Errors map[string]string
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// Error lists the failing fields in a stable order.
func (v *Validator) Error() string {
	fields := make([]string, 0, len(v.Errors))
	for f := range v.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s %s", f, v.Errors[f]))
	}
	return strings.Join(parts, "; ")
}

// Check validates s and returns nil or a Validator describing every failing field.
func Check(s any) *Validator {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	v := &Validator{Errors: make(map[string]string)}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		v.Errors["body"] = err.Error()
		return v
	}
	for _, fe := range verrs {
		v.Errors[fe.Field()] = describe(fe)
	}
	return v
}

// Struct validates s and returns a VALIDATION domain error carrying message
// when it fails.
func Struct(s any, message string) error {
	if v := Check(s); v != nil {
		return apperrors.Wrap(apperrors.CodeValidation, message, v)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "uuid4", "uuid":
		return "must be a valid id"
	case "currency":
		return "must be one of USD, USDC"
	case "nefield":
		return "must differ from " + fe.Param()
	default:
		return "is invalid"
	}
}
