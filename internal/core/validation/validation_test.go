package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/backoffice/internal/core/domain"
)

func fieldErrors(t *testing.T, err error) domain.FieldErrors {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrInvalidFields)
	var fe domain.FieldErrors
	require.True(t, errors.As(err, &fe), "expected FieldErrors, got %T", err)
	return fe
}

func draft() domain.SignUpDraft {
	return domain.SignUpDraft{
		Role:            domain.RoleSender,
		Name:            "Ada Lovelace",
		Email:           "ada@example.com",
		Phone:           "+216-12345678",
		Password:        "engine123",
		ConfirmPassword: "engine123",
		BusinessName:    "Analytical Co",
		PostalCode:      "2000",
		TaxReference:    "TAX-1",
	}
}

func TestCredentials(t *testing.T) {
	v := New()

	creds, err := v.Credentials("  Ada@Example.COM ", "engine123")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", creds.Email)
	assert.Equal(t, "engine123", creds.Password)

	fe := fieldErrors(t, func() error { _, err := v.Credentials("nope", "short"); return err }())
	assert.Equal(t, "Email must be a valid email", fe["email"])
	assert.Equal(t, "Password must be at least 8 characters long", fe["password"])

	fe = fieldErrors(t, func() error { _, err := v.Credentials("", ""); return err }())
	assert.Equal(t, "Email is required", fe["email"])
	assert.Equal(t, "Password is required", fe["password"])
}

func TestCredentials_PasswordUpperBound(t *testing.T) {
	v := New()

	_, err := v.Credentials("ada@example.com", strings.Repeat("a", 72))
	require.NoError(t, err)

	fe := fieldErrors(t, func() error { _, err := v.Credentials("ada@example.com", strings.Repeat("a", 73)); return err }())
	assert.Equal(t, "Password must be at most 72 characters long", fe["password"])
}

func TestEmail(t *testing.T) {
	v := New()

	got, err := v.Email(" Bob@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", got)

	fe := fieldErrors(t, func() error { _, err := v.Email("bob@"); return err }())
	assert.Contains(t, fe, "email")
}

func TestSignUp_Valid(t *testing.T) {
	d := draft()
	d.Role = "sender"
	d.Email = " ADA@example.com "

	got, err := New().SignUp(d)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSender, got.Role)
	assert.Equal(t, "ada@example.com", got.Email)
}

func TestSignUp_PhoneFormats(t *testing.T) {
	v := New()
	for _, phone := range []string{"12345678", "012345678", "+21612345678", "+216-12345678"} {
		d := draft()
		d.Phone = phone
		_, err := v.SignUp(d)
		assert.NoError(t, err, phone)
	}
	for _, phone := range []string{"", "1234", "+1-12345678", "abcdefgh"} {
		d := draft()
		d.Phone = phone
		fe := fieldErrors(t, func() error { _, err := v.SignUp(d); return err }())
		assert.Equal(t, "Phone number must be a valid phone number", fe["phone"], phone)
	}
}

func TestSignUp_PasswordMismatchAlwaysReported(t *testing.T) {
	d := draft()
	d.ConfirmPassword = "engine124"
	d.Name = ""
	d.Email = "bad"

	fe := fieldErrors(t, func() error { _, err := New().SignUp(d); return err }())
	assert.Equal(t, "The password and confirm password fields must match.", fe["confirmPassword"])
	assert.Contains(t, fe, "name")
	assert.Contains(t, fe, "email")
}

func TestSignUp_RoleConditionalFields(t *testing.T) {
	v := New()

	sender := draft()
	sender.TaxReference = ""
	fe := fieldErrors(t, func() error { _, err := v.SignUp(sender); return err }())
	assert.Equal(t, "Tax reference is required", fe["taxReference"])

	carrier := draft()
	carrier.Role = domain.RoleCarrier
	carrier.TaxReference = ""
	_, err := v.SignUp(carrier)
	assert.NoError(t, err)

	carrier.BusinessName = "  "
	fe = fieldErrors(t, func() error { _, err := v.SignUp(carrier); return err }())
	assert.Equal(t, "Company name is required", fe["businessName"])
}

func TestSignUp_UnknownRole(t *testing.T) {
	for _, role := range []domain.Role{"", "ADMIN", "DRIVER"} {
		d := draft()
		d.Role = role
		fe := fieldErrors(t, func() error { _, err := New().SignUp(d); return err }())
		assert.Contains(t, fe, "role", string(role))
	}
}

func TestDraftFields_OnlyNamedFieldsReported(t *testing.T) {
	v := New()
	d := domain.SignUpDraft{Role: domain.RoleSender, Email: "bad"}

	require.NoError(t, v.DraftFields(d, "role"))

	err := v.DraftFields(d, "name", "email", "phone", "password", "confirmPassword")
	fe := fieldErrors(t, err)
	assert.Contains(t, fe, "email")
	assert.Contains(t, fe, "name")
	assert.NotContains(t, fe, "taxReference")
	assert.NotContains(t, fe, "role")
}

func TestDraftFields_CrossFieldRulesScoped(t *testing.T) {
	v := New()
	d := draft()
	d.TaxReference = ""

	// taxReference is not part of the personal step.
	assert.NoError(t, v.DraftFields(d, "name", "email", "phone", "password", "confirmPassword"))

	fe := fieldErrors(t, v.DraftFields(d, "businessName", "postalCode", "taxReference"))
	assert.Equal(t, domain.FieldErrors{"taxReference": "Tax reference is required"}, fe)
}

func TestDraftFields_NoFields(t *testing.T) {
	assert.NoError(t, New().DraftFields(domain.SignUpDraft{}))
}

func TestStruct_AdminAccount(t *testing.T) {
	v := New()
	assert.NoError(t, v.Struct(AdminAccount{Name: "Root", Email: "root@example.com", Password: "adminpass"}))

	fe := fieldErrors(t, v.Struct(AdminAccount{Name: "R", Email: "root", Phone: "1", Password: "x"}))
	assert.Len(t, fe, 4)
}
