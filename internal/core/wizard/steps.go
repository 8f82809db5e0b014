package wizard

import (
	"errors"
	"fmt"

	"github.com/99minutos/backoffice/internal/core/domain"
)

// Step is a position in the registration wizard.
type Step int

const (
	RoleSelection Step = iota
	PersonalInfo
	BusinessInfo
	Finish
)

func (s Step) String() string {
	if s < RoleSelection || s > Finish {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return table[s].ID
}

// StepInfo describes one wizard step and the draft fields it collects.
type StepInfo struct {
	Step   Step     `json:"index"`
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Fields []string `json:"fields"`
}

var table = [...]StepInfo{
	{Step: RoleSelection, ID: "role", Title: "Role", Fields: []string{"role"}},
	{Step: PersonalInfo, ID: "personal", Title: "Personal Information", Fields: []string{"name", "email", "phone", "password", "confirmPassword"}},
	{Step: BusinessInfo, ID: "business", Title: "Business Information", Fields: []string{"businessName", "postalCode", "taxReference"}},
	{Step: Finish, ID: "finish", Title: "Finish"},
}

// ErrUnknownStep is returned when a step identifier is not in the table.
var ErrUnknownStep = errors.New("unknown wizard step")

// Steps returns a copy of the step table in order.
func Steps() []StepInfo {
	out := make([]StepInfo, len(table))
	for i, s := range table {
		s.Fields = append([]string(nil), s.Fields...)
		out[i] = s
	}
	return out
}

// Lookup finds a step by its identifier.
func Lookup(id string) (StepInfo, bool) {
	for _, s := range table {
		if s.ID == id {
			return s, true
		}
	}
	return StepInfo{}, false
}

// StepValidator checks a subset of draft fields.
type StepValidator interface {
	DraftFields(d domain.SignUpDraft, fields ...string) error
}

// ValidateStep validates only the fields of the step named id. It backs
// the stateless per-step endpoint and uses the same table as the Wizard.
func ValidateStep(v StepValidator, id string, d domain.SignUpDraft) (StepInfo, error) {
	info, ok := Lookup(id)
	if !ok {
		return StepInfo{}, fmt.Errorf("%w: %q", ErrUnknownStep, id)
	}
	return info, v.DraftFields(d, info.Fields...)
}
