package handler

import (
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/validation"
)

// echoValidator lets Echo call c.Validate(req) with the same rules and
// violation format the services use.
type echoValidator struct {
	v *validation.Validator
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator(v *validation.Validator) *echoValidator {
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	return ev.v.Struct(i)
}
