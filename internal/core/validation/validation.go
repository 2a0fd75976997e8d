// Package validation gates write payloads before they reach persistence.
// All checks are pure: no I/O, no state beyond the shared validator instance.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/userhub/user-service/internal/core/domain"
	"github.com/userhub/user-service/internal/core/ports"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report violations under the wire-level field name, not the Go one.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateCreate checks a create/register payload against the per-field
// rules declared on ports.CreateUserInput. Only the first violated field is
// reported (fail-fast, not aggregate).
func ValidateCreate(in ports.CreateUserInput) error {
	return firstViolation(validate.Struct(in))
}

// ValidateUpdate checks a partial update payload. Every field is optional,
// but a payload carrying none of the recognised fields is rejected.
func ValidateUpdate(in ports.UpdateUserInput) error {
	if in.Empty() {
		return domain.NewValidationError("", "update payload must contain at least one field")
	}
	return firstViolation(validate.Struct(in))
}

// ValidateUserID checks that id conforms to the textual UUID format. The
// check is purely syntactic; it says nothing about whether a row exists.
func ValidateUserID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.NewValidationError("id", "invalid UUID format")
	}
	return nil
}

// firstViolation collapses a validator error into a single-field
// domain.ValidationError, keeping struct declaration order.
func firstViolation(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return domain.NewValidationError(fe.Field(), fieldMessage(fe))
	}
	return err
}

// fieldMessage converts a single ValidationError into a human-readable message.
func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "datetime":
		return field + " must be a valid ISO date (YYYY-MM-DD)"
	case "uri":
		return field + " must be a valid URI"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return field + " must not be empty"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
