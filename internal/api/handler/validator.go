package handler

import (
	"github.com/99minutos/backoffice/internal/core/validation"
)

// echoValidator adapts validation.Validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validation.Validator
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator(v *validation.Validator) *echoValidator {
	if v == nil {
		v = validation.New()
	}
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Failures are
// domain.FieldErrors keyed by the struct's json or query names.
func (ev *echoValidator) Validate(i any) error {
	return ev.v.Struct(i)
}
