package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidFields      = errors.New("invalid fields")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	ErrAuthFailure        = errors.New("authentication failure")
	ErrForbidden          = errors.New("access forbidden")
	ErrUnauthorized       = errors.New("authentication required")
	ErrPrincipalNotFound  = errors.New("principal not found")
	ErrSessionNotFound    = errors.New("session not found")
)

// User-facing messages. Backend faults never expose their cause.
const (
	MsgInvalidFields      = "Invalid fields!"
	MsgInvalidCredentials = "Invalid credentials!"
	MsgEmailInUse         = "This email is already in use. Please try another."
	MsgAuthFailure        = "An error occurred!"
	MsgForbidden          = "Access forbidden"
	MsgUnauthorized       = "Authentication required"
	MsgSignUpSucceeded    = "Account created successfully!"
	MsgSignUpFailed       = "Something went wrong"
)

// FieldErrors maps a field identifier to its first validation message.
// It matches ErrInvalidFields under errors.Is.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "invalid fields: " + strings.Join(parts, "; ")
}

func (fe FieldErrors) Is(target error) bool { return target == ErrInvalidFields }

// Add records msg for field unless the field already carries an error.
func (fe FieldErrors) Add(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}

// Only returns the subset of errors for the given fields, or nil when
// none of them failed.
func (fe FieldErrors) Only(fields ...string) FieldErrors {
	var out FieldErrors
	for _, f := range fields {
		if msg, ok := fe[f]; ok {
			if out == nil {
				out = FieldErrors{}
			}
			out[f] = msg
		}
	}
	return out
}

// UserMessage returns the message shown to the end user for err.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidFields):
		return MsgInvalidFields
	case errors.Is(err, ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, ErrEmailInUse):
		return MsgEmailInUse
	case errors.Is(err, ErrForbidden):
		return MsgForbidden
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrSessionNotFound):
		return MsgUnauthorized
	default:
		return MsgAuthFailure
	}
}
