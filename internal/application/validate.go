package application

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/example/homecare-scheduler/internal/scheduling"
)

// structValidator performs struct tag validation for the input payloads. It is
// safe for concurrent use.
var structValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// validateStruct runs tag validation and folds the result into the field error
// map the HTTP layer renders.
func validateStruct(input any) *ValidationError {
	err := structValidator.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		vErr := &ValidationError{}
		vErr.add("input", "is invalid")
		return vErr
	}

	vErr := &ValidationError{}
	for _, fe := range fieldErrs {
		vErr.add(fe.Field(), fieldMessage(fe))
	}
	return vErr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "must use the format " + fe.Param()
	}
	return "is invalid"
}

const dateLayout = "2006-01-02"

// parseDateField parses a civil date string, recording a field error on the
// supplied ValidationError when it is malformed.
func parseDateField(vErr *ValidationError, field, value string) time.Time {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		vErr.add(field, "must use the format "+dateLayout)
		return time.Time{}
	}
	return scheduling.DateOf(parsed)
}

// parseTimeField parses an HH:MM time of day, recording a field error when it
// is malformed.
func parseTimeField(vErr *ValidationError, field, value string) scheduling.TimeOfDay {
	parsed, err := scheduling.ParseTimeOfDay(value)
	if err != nil {
		vErr.add(field, "must use the format 15:04")
		return 0
	}
	return parsed
}

// parseTimeRange parses paired start/end time strings into a validated range.
func parseTimeRange(vErr *ValidationError, startField, startValue, endField, endValue string) scheduling.TimeRange {
	start := parseTimeField(vErr, startField, startValue)
	end := parseTimeField(vErr, endField, endValue)
	if vErr.HasErrors() {
		return scheduling.TimeRange{}
	}
	r := scheduling.TimeRange{Start: start, End: end}
	if !r.Valid() {
		vErr.add(endField, fmt.Sprintf("must be after %s", startValue))
		return scheduling.TimeRange{}
	}
	return r
}
