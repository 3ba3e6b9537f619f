// Package validate holds the field rules shared by every registry and aggregate.
//
// Rules are expressed as go-playground/validator struct tags. Field names in
// messages come from the `field` tag so that users see the column they typed.
// Every failure is returned as an aggregates error with the validation code.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	domainagg "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/aggregates"
)

// DateLayout is the only accepted calendar date format.
const DateLayout = "2006-01-02"

var (
	personNamePattern = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ\s'-]+$`)
	phonePattern      = regexp.MustCompile(`^\d{1,20}$`)
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

// Engine returns the shared validator with the domain rules registered.
func Engine() *validator.Validate {
	engineOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.TrimSpace(fld.Tag.Get("field"))
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})

		mustRegister(v, "personname", matchString(personNamePattern))
		mustRegister(v, "phonedigits", matchString(phonePattern))
		mustRegister(v, "contactemail", matchString(emailPattern))
		mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(DateLayout, strings.TrimSpace(fl.Field().String()))
			return err == nil
		})
		mustRegister(v, "numericid", func(fl validator.FieldLevel) bool {
			_, ok := parseID(fl.Field().String())
			return ok
		})
		engine = v
	})
	return engine
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

func matchString(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// Struct validates v and reports the first failing field.
func Struct(op string, v interface{}) error {
	err := Engine().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return domainagg.NewError(domainagg.CodeValidation, op, describe(verrs[0]), err)
	}
	return domainagg.NewError(domainagg.CodeValidation, op, err.Error(), err)
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "personname":
		return fmt.Sprintf("%s must contain only letters, spaces, apostrophes or hyphens", field)
	case "phonedigits":
		return fmt.Sprintf("%s must contain only digits (at most 20)", field)
	case "contactemail":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "isodate":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	case "numericid":
		return fmt.Sprintf("%s must be a positive number", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// ID parses a user supplied identifier.
func ID(op, field, raw string) (uint, error) {
	id, ok := parseID(raw)
	if !ok {
		return 0, domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("invalid %s %q: must be a positive number", field, strings.TrimSpace(raw)), nil)
	}
	return id, nil
}

// OptionalID is ID for fields where blank means "absent".
func OptionalID(op, field, raw string) (uint, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return ID(op, field, raw)
}

func parseID(raw string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// Int parses a whole number typed at a prompt.
func Int(op, field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("%s must be a whole number", field), err)
	}
	return n, nil
}

// Decimal parses an amount typed at a prompt.
func Decimal(op, field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("%s must be a number", field), err)
	}
	return d, nil
}

// Date parses a YYYY-MM-DD date.
func Date(op, field, raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field), err)
	}
	return t, nil
}
