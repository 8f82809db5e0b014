package domain

import "time"

// AuthEventKind classifies an entry of the authentication audit trail.
type AuthEventKind string

const (
	EventSignInSucceeded AuthEventKind = "sign_in_succeeded"
	EventSignInRejected  AuthEventKind = "sign_in_rejected"
	EventSignUp          AuthEventKind = "sign_up"
	EventSignOut         AuthEventKind = "sign_out"
	EventPasswordReset   AuthEventKind = "password_reset_requested"
)

// AuthEvent records a single authentication outcome.
type AuthEvent struct {
	Kind        AuthEventKind
	Email       string
	PrincipalID string // empty when the principal is unknown
	Role        Role
	RemoteIP    string
	Reason      string
	OccurredAt  time.Time
}
