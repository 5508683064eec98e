package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "ppecli/internal/errors"
	"ppecli/internal/futures"
	"ppecli/internal/infrastructure"
)

// QueryValidator decodes and validates query parameters with struct tags.
// Field names in errors come from the `query` tag.
type QueryValidator struct {
	validator *validator.Validate
	logger    *slog.Logger
}

// NewQueryValidator creates a new query validator
func NewQueryValidator(logger *slog.Logger) *QueryValidator {
	v := validator.New()
	v.RegisterValidation("instrument", isInstrument)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if logger == nil {
		logger = slog.Default()
	}
	return &QueryValidator{
		validator: v,
		logger:    infrastructure.WithComponent(logger, "query_validator"),
	}
}

// Float parses an optional decimal query parameter. A comma is accepted as
// the decimal separator. An absent parameter yields nil.
func (v *QueryValidator) Float(r *http.Request, param string) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(param))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil {
		v.logger.DebugContext(r.Context(), "invalid query parameter",
			slog.String("param", param),
			slog.String("value", raw))
		return nil, apierrors.ErrValidation(param, fmt.Sprintf("%s must be a number", param))
	}
	return &f, nil
}

// ValidateStruct validates a struct and returns validation errors
func (v *QueryValidator) ValidateStruct(s interface{}) error {
	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return apierrors.ErrValidation("", err.Error())
	}
	out := make([]apierrors.ValidationError, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		out = append(out, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: formatValidationError(fe),
		})
	}
	return apierrors.NewValidationErrors(out)
}

// formatValidationError formats validation error messages
func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "instrument":
		return fmt.Sprintf("%s must be ZC, ZS, milho or soja", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

// isInstrument accepts a root symbol or display name
func isInstrument(fl validator.FieldLevel) bool {
	_, err := futures.ParseInstrument(fl.Field().String())
	return err == nil
}
