// Package validation configures the shared go-playground validator so that
// reported field names match the JSON wire names clients send.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/edu-portal-api/pkg/errors"
)

// New returns a validator that names fields after their json tag.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	return v
}

// Fields lists every failing field in declaration order, without duplicates.
func Fields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	seen := make(map[string]struct{}, len(verrs))
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := fieldPath(fe)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		fields = append(fields, name)
	}
	return fields
}

// Struct validates payload and converts failures into a VALIDATION_ERROR.
func Struct(v *validator.Validate, payload interface{}, message string) error {
	err := v.Struct(payload)
	if err == nil {
		return nil
	}
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "validator misuse")
	}
	appErr := appErrors.Validation(message, Fields(err)...)
	appErr.Err = err
	return appErr
}

// fieldPath drops the top-level struct name from the namespace so nested
// fields read "children[0].url" rather than "MenuRequest.children[0].url".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}
