// Package validator provides custom validation functions for Gin's binding
// engine and field-level validation of store inputs.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apperrors "eventplanner/internal/errors"
	"eventplanner/internal/models"
)

var clockTimeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonName)
		registerAll(v)
	}
}

// jsonName reports fields by their json tag.
func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func registerAll(v *validator.Validate) {
	_ = v.RegisterValidation("event_type", validateEventType)
	_ = v.RegisterValidation("event_type_filter", validateEventTypeFilter)
	_ = v.RegisterValidation("rsvp_status", validateRSVPStatus)
	_ = v.RegisterValidation("rsvp_filter", validateRSVPFilter)
	_ = v.RegisterValidation("task_filter", validateTaskFilter)
	_ = v.RegisterValidation("sort_key", validateSortKey)
	_ = v.RegisterValidation("sort_order", validateSortOrder)
	_ = v.RegisterValidation("calendar_date", validateCalendarDate)
	_ = v.RegisterValidation("clock_time", validateClockTime)
	_ = v.RegisterValidation("notblank", validateNotBlank)
}

// engine returns the validator used for store inputs. Field names in errors
// are taken from json tags.
func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonName)
		registerAll(validate)
	})
	return validate
}

// Struct validates v and returns a VALIDATION_FAILED AppError whose Fields
// map each offending field to a user-facing message, or nil.
func Struct(v any) error {
	return Translate(engine().Struct(v))
}

// Translate converts validation errors, including those from gin binding,
// into a VALIDATION_FAILED AppError. Any other error becomes INVALID_INPUT.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = Message(fe)
		}
	}
	return apperrors.WithFields(apperrors.ErrValidation, fields)
}

// Message renders a single field error the way the forms show it.
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", label(fe.Field()))
	case "email":
		return "Please enter a valid email address"
	case "min":
		if fe.Field() == "password" {
			return "Password must be at least 6 characters"
		}
		return fmt.Sprintf("%s must be at least %s", label(fe.Field()), fe.Param())
	case "eqfield":
		return "Passwords do not match"
	case "gt":
		return "Please enter a positive number"
	case "gte":
		return "Please enter a number that is not negative"
	case "calendar_date":
		return "Please enter a valid date"
	case "clock_time":
		return "Please enter a valid time"
	case "event_type", "rsvp_status", "event_type_filter", "rsvp_filter", "task_filter", "sort_key", "sort_order":
		return fmt.Sprintf("%s is not a recognised value", label(fe.Field()))
	}
	return "Invalid input"
}

// label turns a json field name into a form label: "first_name" -> "First name".
func label(field string) string {
	words := strings.ReplaceAll(field, "_", " ")
	if words == "" {
		return words
	}
	return strings.ToUpper(words[:1]) + words[1:]
}

func validateEventType(fl validator.FieldLevel) bool {
	return models.EventType(fl.Field().String()).Valid()
}

func validateEventTypeFilter(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "all" || models.EventType(s).Valid()
}

func validateRSVPStatus(fl validator.FieldLevel) bool {
	return models.RSVPStatus(fl.Field().String()).Valid()
}

func validateRSVPFilter(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "all" || models.RSVPStatus(s).Valid()
}

func validateTaskFilter(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "all", "pending", "completed":
		return true
	}
	return false
}

func validateSortKey(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "date", "name":
		return true
	}
	return false
}

func validateSortOrder(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "asc", "desc":
		return true
	}
	return false
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.DateOnly, fl.Field().String())
	return err == nil
}

func validateClockTime(fl validator.FieldLevel) bool {
	return clockTimeRegex.MatchString(fl.Field().String())
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
