package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" admin ")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, r)

	_, ok = ParseRole("driver")
	assert.False(t, ok)
}

func TestSessionHasRole(t *testing.T) {
	s := Session{Role: RoleCarrier}
	assert.True(t, s.HasRole(RoleAdmin, RoleCarrier))
	assert.False(t, s.HasRole(RoleAdmin))
	assert.False(t, s.HasRole())
}

func TestSessionExpired(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := Session{ExpiresAt: now}
	assert.True(t, s.Expired(now))
	assert.False(t, s.Expired(now.Add(-time.Second)))
}

func TestFieldErrors(t *testing.T) {
	fe := FieldErrors{}
	fe.Add("email", "first")
	fe.Add("email", "second")
	fe.Add("name", "Name is required")

	assert.Equal(t, "first", fe["email"])
	assert.Equal(t, "invalid fields: email: first; name: Name is required", fe.Error())

	wrapped := fmt.Errorf("sign up: %w", fe)
	assert.ErrorIs(t, wrapped, ErrInvalidFields)

	var got FieldErrors
	assert.True(t, errors.As(wrapped, &got))
	assert.Equal(t, FieldErrors{"name": "Name is required"}, got.Only("name", "phone"))
	assert.Nil(t, got.Only("phone"))
}

func TestUserMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{FieldErrors{"email": "x"}, MsgInvalidFields},
		{ErrInvalidCredentials, MsgInvalidCredentials},
		{ErrEmailInUse, MsgEmailInUse},
		{ErrForbidden, MsgForbidden},
		{ErrSessionNotFound, MsgUnauthorized},
		{fmt.Errorf("%w: boom", ErrAuthFailure), MsgAuthFailure},
		{errors.New("mongo: connection refused"), MsgAuthFailure},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, UserMessage(tc.err), "%v", tc.err)
	}
}

func TestSignUpDraftProfile(t *testing.T) {
	d := SignUpDraft{Role: RoleCarrier, BusinessName: "Fast Freight", PostalCode: "1000", TaxReference: "ignored"}
	assert.Equal(t, CarrierProfile{PrincipalID: "p1", CompanyName: "Fast Freight", PostalCode: "1000"}, d.Profile("p1"))

	d.Role = RoleSender
	assert.Equal(t, SenderProfile{PrincipalID: "p1", BusinessName: "Fast Freight", TaxReference: "ignored", PostalCode: "1000"}, d.Profile("p1"))

	d.Role = RoleAdmin
	assert.Nil(t, d.Profile("p1"))
}
