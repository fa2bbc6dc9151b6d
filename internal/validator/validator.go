package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	domainBooking "skillconnect/internal/domain/booking"
	domainUser "skillconnect/internal/domain/user"
	appErrors "skillconnect/pkg/errors"
	"skillconnect/pkg/utils"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	custom := map[string]validator.Func{
		"ng_phone":        validatePhone,
		"user_type":       validateUserType,
		"worker_category": validateCategory,
		"availability":    validateAvailability,
		"booking_status":  validateBookingStatus,
		"iso_date":        validateISODate,
	}
	for tag, fn := range custom {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register validation %q: %v", tag, err))
		}
	}
}

// ValidateStruct runs struct-tag validation and converts failures into a
// VALIDATION_ERROR carrying one entry per rejected field.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return appErrors.NewAppError(appErrors.CodeValidation, "Validation failed", err)
	}

	details := make([]appErrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, appErrors.FieldError{
			Field:   fieldPath(fe),
			Message: message(fe),
		})
	}
	return appErrors.NewValidationError("Validation failed", details...)
}

// ParseISODate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates
func ParseISODate(value string) (time.Time, error) {
	layouts := []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// fieldPath drops the top-level struct name from the namespace, so
// "CreateBookingRequest.location.address" becomes "location.address".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be %s characters", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "email":
		return "Invalid email address"
	case "ng_phone":
		return "Invalid Nigerian phone number"
	case "user_type":
		return "Invalid user type"
	case "worker_category":
		return "Invalid worker category"
	case "availability":
		return "Invalid availability"
	case "booking_status":
		return "Invalid status"
	case "iso_date":
		return "Invalid date format"
	case "latitude", "longitude":
		return fmt.Sprintf("%s must be a valid coordinate", fe.Field())
	case "numeric":
		return fmt.Sprintf("%s must contain only digits", fe.Field())
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}

func validatePhone(fl validator.FieldLevel) bool {
	return utils.IsNigerianPhone(fl.Field().String())
}

func validateUserType(fl validator.FieldLevel) bool {
	return domainUser.Type(fl.Field().String()).IsValid()
}

func validateCategory(fl validator.FieldLevel) bool {
	return domainUser.Category(fl.Field().String()).IsValid()
}

func validateAvailability(fl validator.FieldLevel) bool {
	return domainUser.Availability(fl.Field().String()).IsValid()
}

func validateBookingStatus(fl validator.FieldLevel) bool {
	return domainBooking.Status(fl.Field().String()).IsValid()
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := ParseISODate(fl.Field().String())
	return err == nil
}
