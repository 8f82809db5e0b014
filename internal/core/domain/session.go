package domain

import "time"

// Session is the server-side record of an authenticated principal.
// ID is an opaque identifier embedded in the session token.
type Session struct {
	ID          string    `json:"id"`
	PrincipalID string    `json:"principal_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        Role      `json:"role"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// HasRole reports whether the session role is one of roles.
func (s Session) HasRole(roles ...Role) bool {
	return RoleSet(roles).Allows(s.Role)
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
