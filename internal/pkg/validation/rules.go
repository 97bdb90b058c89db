package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// Field messages returned to API clients
const (
	MsgRequired = "This field is required."
	MsgBlank    = "This field may not be blank."
	MsgNull     = "This field may not be null."
	MsgInvalid  = "Invalid value."
)

// NonFieldKey collects errors that do not belong to a single field
const NonFieldKey = "non_field_errors"

// New returns a validator that reports json field names and knows "notblank"
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// message renders a validator failure in client-facing wording
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "notblank":
		return MsgBlank
	case "max":
		return "Ensure this field has no more than " + fe.Param() + " characters."
	case "min":
		return "Ensure this field has at least " + fe.Param() + " characters."
	default:
		return MsgInvalid
	}
}

// Messages flattens a validator error into client messages
func Messages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, message(fe))
	}
	return out
}

// ToValidationError converts a validator error into a per-field ValidationError
func ToValidationError(err error) *apperrors.ValidationError {
	verr := apperrors.NewValidationError()

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return verr.Add(NonFieldKey, err.Error())
	}
	for _, fe := range verrs {
		field := fe.Field()
		if field == "" {
			field = NonFieldKey
		}
		verr.Add(field, message(fe))
	}
	return verr
}
