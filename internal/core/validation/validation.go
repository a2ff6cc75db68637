// Package validation checks input shapes before they reach the store.
//
// Every field is checked; violations are reported in struct field order
// under the field's JSON name. Uniqueness is the caller's concern.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
)

// slugPattern admits lowercase Latin or Cyrillic letters and digits in
// hyphen-separated groups.
var slugPattern = regexp.MustCompile(`^[0-9a-zа-яё]+(?:-[0-9a-zа-яё]+)*$`)

// Violation is a single failed constraint.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned when at least one constraint fails.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error { return domain.ErrInvalidInput }

// Validator wraps go-playground/validator with the project's custom tags.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with slug and enum tags registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query", "param"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})

	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return IsSlug(fl.Field().String())
	})
	// Money fields compare by sign, so gt=0 on a decimal stays exact.
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		return f.Interface().(decimal.Decimal).Sign()
	}, decimal.Decimal{})

	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return domain.Role(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		return domain.OrderStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("ticket_status", func(fl validator.FieldLevel) bool {
		return domain.TicketStatus(fl.Field().String()).Valid()
	})

	return &Validator{v: v}
}

// IsSlug reports whether s is a valid URL slug.
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// Struct validates i and returns *Error listing every violation.
func (v *Validator) Struct(i any) error {
	err := v.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := &Error{Violations: make([]Violation, 0, len(ve))}
	for _, fe := range ve {
		out.Violations = append(out.Violations, Violation{
			Field:   fieldPath(fe),
			Message: message(fe),
		})
	}
	return out
}

// fieldPath drops the top-level struct name and untagged embedded structs
// (which keep their exported Go name) from the namespace.
func fieldPath(fe validator.FieldError) string {
	segs := strings.Split(fe.Namespace(), ".")
	if len(segs) < 2 {
		return fe.Field()
	}
	segs = segs[1:]
	out := segs[:0]
	for i, s := range segs {
		if i < len(segs)-1 && s != "" && unicode.IsUpper([]rune(s)[0]) {
			continue
		}
		out = append(out, s)
	}
	return strings.Join(out, ".")
}

func message(fe validator.FieldError) string {
	kind := fe.Kind()
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "slug":
		return "may contain only lowercase letters, digits and hyphens"
	case "role":
		return "must be one of: USER, MANAGER, ADMIN"
	case "order_status":
		return "must be one of: PENDING, CONFIRMED, CANCELLED, COMPLETED"
	case "ticket_status":
		return "must be one of: OPEN, IN_PROGRESS, RESOLVED, CLOSED"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte", "min":
		if kind == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "lte", "max":
		if kind == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
