package validation

import "fmt"

var messages = map[string]map[string]string{
	"email": {
		"required": "Email is required",
		"email":    "Email must be a valid email",
	},
	"password": {
		"required": "Password is required",
		"min":      "Password must be at least 8 characters long",
		"max":      "Password must be at most 72 characters long",
	},
	"confirmPassword": {
		"required": "Password confirmation is required",
		"min":      "Password confirmation must be at least 8 characters long",
		"max":      "Password confirmation must be at most 72 characters long",
		"match":    "The password and confirm password fields must match.",
	},
	"name": {
		"required": "Name is required",
		"min":      "Name must be at least 3 characters long",
	},
	"phone": {
		"phone": "Phone number must be a valid phone number",
	},
	"role": {
		"required": "Role is required",
		"oneof":    "Role must be one of SENDER or CARRIER",
	},
	"businessName": {
		"required_sender":  "Business name is required",
		"required_carrier": "Company name is required",
	},
	"postalCode": {
		"required_sender":  "Postal code is required",
		"required_carrier": "Postal code is required",
	},
	"taxReference": {
		"required_sender": "Tax reference is required",
	},
}

// message returns the product copy for a failed rule, falling back to a
// generic sentence for rules without one.
func message(field, tag, param string) string {
	if msg, ok := messages[field][tag]; ok {
		return msg
	}
	switch tag {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, tag)
	}
}
