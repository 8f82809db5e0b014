// Package validation holds the input rules for sign-in and sign-up. It wraps
// go-playground/validator and turns its errors into domain.FieldErrors keyed
// by the JSON field names the clients send.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/99minutos/backoffice/internal/core/domain"
)

var phonePattern = regexp.MustCompile(`^((\+216-?)|0)?[0-9]{8}$`)

// Credentials is the sign-in payload after normalization.
type Credentials struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Validator validates sign-in credentials, sign-up drafts and arbitrary
// request structs.
type Validator struct {
	v *validator.Validate
	// draftFields maps JSON field names of SignUpDraft to Go field names,
	// as StructPartial expects the latter.
	draftFields map[string]string
}

// New returns a Validator with the custom phone tag and the sign-up
// cross-field rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	if err := v.RegisterValidation("phone", validatePhone); err != nil {
		panic(fmt.Sprintf("validation: register phone: %v", err))
	}
	v.RegisterStructValidation(signUpRules, domain.SignUpDraft{})

	return &Validator{v: v, draftFields: fieldIndex(reflect.TypeOf(domain.SignUpDraft{}))}
}

// Struct validates any tagged struct and returns domain.FieldErrors on failure.
func (val *Validator) Struct(i any) error {
	return toFieldErrors(val.v.Struct(i))
}

// Credentials normalizes and validates a sign-in attempt.
func (val *Validator) Credentials(email, password string) (Credentials, error) {
	creds := Credentials{Email: domain.NormalizeEmail(email), Password: password}
	if err := val.Struct(creds); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// Email validates a single email address.
func (val *Validator) Email(email string) (string, error) {
	email = domain.NormalizeEmail(email)
	if err := val.v.Var(email, "required,email"); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return "", domain.FieldErrors{"email": message("email", ve[0].Tag(), ve[0].Param())}
		}
		return "", err
	}
	return email, nil
}

// SignUp normalizes and validates a complete draft.
func (val *Validator) SignUp(d domain.SignUpDraft) (domain.SignUpDraft, error) {
	d = d.Normalized()
	if err := val.Struct(d); err != nil {
		return domain.SignUpDraft{}, err
	}
	return d, nil
}

// DraftFields validates only the named draft fields (JSON identifiers).
// Cross-field rules still run, but only errors for the named fields are
// reported.
func (val *Validator) DraftFields(d domain.SignUpDraft, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if name, ok := val.draftFields[f]; ok {
			names = append(names, name)
		}
	}

	err := toFieldErrors(val.v.StructPartial(d.Normalized(), names...))
	var fe domain.FieldErrors
	if errors.As(err, &fe) {
		if only := fe.Only(fields...); only != nil {
			return only
		}
		return nil
	}
	return err
}

// signUpRules covers the rules that depend on more than one field.
func signUpRules(sl validator.StructLevel) {
	d := sl.Current().Interface().(domain.SignUpDraft)

	if d.Password != d.ConfirmPassword {
		sl.ReportError(d.ConfirmPassword, "confirmPassword", "ConfirmPassword", "match", "password")
	}

	switch d.Role {
	case domain.RoleSender:
		if d.BusinessName == "" {
			sl.ReportError(d.BusinessName, "businessName", "BusinessName", "required_sender", "")
		}
		if d.PostalCode == "" {
			sl.ReportError(d.PostalCode, "postalCode", "PostalCode", "required_sender", "")
		}
		if d.TaxReference == "" {
			sl.ReportError(d.TaxReference, "taxReference", "TaxReference", "required_sender", "")
		}
	case domain.RoleCarrier:
		if d.BusinessName == "" {
			sl.ReportError(d.BusinessName, "businessName", "BusinessName", "required_carrier", "")
		}
		if d.PostalCode == "" {
			sl.ReportError(d.PostalCode, "postalCode", "PostalCode", "required_carrier", "")
		}
	}
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func toFieldErrors(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := make(domain.FieldErrors, len(ve))
	for _, fe := range ve {
		out.Add(fe.Field(), message(fe.Field(), fe.Tag(), fe.Param()))
	}
	return out
}

// jsonName reports the field under its json name, or its query name for
// bound query structs.
func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		tag = f.Tag.Get("query")
	}
	name := strings.SplitN(tag, ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

func fieldIndex(t reflect.Type) map[string]string {
	idx := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if name := jsonName(f); name != "" {
			idx[name] = f.Name
		}
	}
	return idx
}

// AdminAccount is the input for provisioning an ADMIN principal.
type AdminAccount struct {
	Name     string `json:"name"     validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"    validate:"omitempty,phone"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}
