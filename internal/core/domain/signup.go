package domain

import "strings"

// SignUpDraft is the transient form state collected by the registration
// wizard. Field names in JSON double as the wizard's field identifiers.
type SignUpDraft struct {
	Role            Role   `json:"role"            validate:"required,oneof=SENDER CARRIER"`
	Name            string `json:"name"            validate:"required,min=3"`
	Email           string `json:"email"           validate:"required,email"`
	Phone           string `json:"phone"           validate:"phone"`
	Password        string `json:"password"        validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,min=8,max=72"`
	BusinessName    string `json:"businessName"`
	PostalCode      string `json:"postalCode"`
	TaxReference    string `json:"taxReference"`
}

// Normalized returns a copy with surrounding whitespace removed and the
// email lower-cased. Passwords are left untouched.
func (d SignUpDraft) Normalized() SignUpDraft {
	d.Role = Role(strings.ToUpper(strings.TrimSpace(string(d.Role))))
	d.Name = strings.TrimSpace(d.Name)
	d.Email = NormalizeEmail(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.BusinessName = strings.TrimSpace(d.BusinessName)
	d.PostalCode = strings.TrimSpace(d.PostalCode)
	d.TaxReference = strings.TrimSpace(d.TaxReference)
	return d
}

// Profile builds the role profile the draft describes. It returns nil for
// roles without a profile.
func (d SignUpDraft) Profile(principalID string) RoleProfile {
	switch d.Role {
	case RoleSender:
		return SenderProfile{
			PrincipalID:  principalID,
			BusinessName: d.BusinessName,
			TaxReference: d.TaxReference,
			PostalCode:   d.PostalCode,
		}
	case RoleCarrier:
		return CarrierProfile{
			PrincipalID: principalID,
			CompanyName: d.BusinessName,
			PostalCode:  d.PostalCode,
		}
	}
	return nil
}
