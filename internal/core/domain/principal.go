package domain

import (
	"strings"
	"time"
)

// Role is the authorization role carried by a principal and its sessions.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleSender  Role = "SENDER"
	RoleCarrier Role = "CARRIER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSender, RoleCarrier:
		return true
	}
	return false
}

// ParseRole converts s to a Role, ignoring case and surrounding spaces.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.Valid()
}

// RoleSet is a small allow-list of roles.
type RoleSet []Role

// Allows reports whether r is a member of the set.
func (rs RoleSet) Allows(r Role) bool {
	for _, allowed := range rs {
		if allowed == r {
			return true
		}
	}
	return false
}

// BackofficeRoles lists the roles that may hold a backoffice session.
var BackofficeRoles = RoleSet{RoleAdmin}

// Principal models an identity stored in the user directory.
type Principal struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RoleProfile is the role-specific side record created with a principal.
type RoleProfile interface {
	ProfileRole() Role
}

// SenderProfile holds the business details of a SENDER principal.
type SenderProfile struct {
	PrincipalID  string `json:"principal_id"`
	BusinessName string `json:"business_name"`
	TaxReference string `json:"tax_reference"`
	PostalCode   string `json:"postal_code"`
}

func (SenderProfile) ProfileRole() Role { return RoleSender }

// CarrierProfile holds the company details of a CARRIER principal.
type CarrierProfile struct {
	PrincipalID string `json:"principal_id"`
	CompanyName string `json:"company_name"`
	PostalCode  string `json:"postal_code"`
}

func (CarrierProfile) ProfileRole() Role { return RoleCarrier }

// NormalizeEmail trims and lower-cases an email address so lookups and the
// unique index agree on a single spelling.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
