package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinema-booking-system/api"
	"github.com/shopspring/decimal"
)

const (
	ErrRequired      = "is required"
	ErrEmail         = "must be a valid email address"
	ErrMinLength     = "must be at least %s characters long"
	ErrMaxLength     = "must be at most %s characters long"
	ErrMinValue      = "must be at least %s"
	ErrMaxValue      = "must be at most %s"
	ErrMinItems      = "must contain at least %s item(s)"
	ErrMaxItems      = "must contain at most %s item(s)"
	ErrOneOf         = "must be one of: %s"
	ErrUnique        = "must not contain duplicates"
	ErrURL           = "must be a valid URL"
	ErrPositive      = "must be greater than zero"
	ErrBookingStatus = "must be one of PENDING, PAID, CANCELLED"
	ErrPhone         = "must be a valid phone number"
	ErrPassword      = "must be at least 8 characters long and include at least one uppercase letter, " +
		"one lowercase letter, one number, and one special character (!@#$%^&*)."
	ErrInvalid = "is invalid"
)

var (
	hasSpecialRgx = regexp.MustCompile(`[!@#$%^&*]`)
	phoneRgx      = regexp.MustCompile(`^\+?[0-9 ()-]{7,20}$`)
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	// report json field names so messages match the request body
	validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// decimals validate as numbers so gt/min/max apply to prices
	validator.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	validator.RegisterValidation("password", validatePassword)
	validator.RegisterValidation("booking_status", validateBookingStatus)
	validator.RegisterValidation("phone", validatePhone)

	return validator
}

func validateBookingStatus(fl validator.FieldLevel) bool {
	status, ok := fl.Field().Interface().(api.BookingStatus)
	if !ok {
		return false
	}

	return status == api.PENDING || status == api.PAID || status == api.CANCELLED
}

func decimalValue(v reflect.Value) any {
	d, ok := v.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}

	f, _ := d.Float64()
	return f
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRgx.MatchString(fl.Field().String())
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 || len(password) > 25 {
		return false
	}

	containsUpper, containsLower, containsDigit, containsSpecial := false, false, false, false

	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			containsUpper = true
		case unicode.IsLower(ch):
			containsLower = true
		case unicode.IsDigit(ch):
			containsDigit = true
		case hasSpecialRgx.MatchString(string(ch)):
			containsSpecial = true
		}
	}

	return containsUpper && containsLower && containsDigit && containsSpecial
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "email":
		return ErrEmail
	case "min", "gte":
		return boundMessage(err, ErrMinLength, ErrMinValue, ErrMinItems)
	case "max", "lte":
		return boundMessage(err, ErrMaxLength, ErrMaxValue, ErrMaxItems)
	case "gt":
		return ErrPositive
	case "oneof":
		return fmt.Sprintf(ErrOneOf, err.Param())
	case "unique":
		return ErrUnique
	case "url":
		return ErrURL
	case "booking_status":
		return ErrBookingStatus
	case "phone":
		return ErrPhone
	case "password":
		return ErrPassword
	default:
		return ErrInvalid
	}
}

func boundMessage(err validator.FieldError, length, value, items string) string {
	switch err.Kind() {
	case reflect.String:
		return fmt.Sprintf(length, err.Param())
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf(items, err.Param())
	default:
		return fmt.Sprintf(value, err.Param())
	}
}
