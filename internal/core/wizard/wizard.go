// Package wizard implements the multi-step registration flow. A Wizard
// walks a SignUpDraft through role selection, personal and business
// details, validating one step at a time and submitting exactly once.
package wizard

import (
	"context"
	"errors"

	"github.com/99minutos/backoffice/internal/core/domain"
)

// Outcome is the result shown on the Finish step.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeError:
		return "error"
	}
	return "none"
}

// Submitter registers a completed draft.
type Submitter interface {
	SignUp(ctx context.Context, draft domain.SignUpDraft) (*domain.Principal, error)
}

// Wizard holds the state of one registration in progress. It is not safe
// for concurrent use.
type Wizard struct {
	validate StepValidator
	submit   Submitter

	step      Step
	draft     domain.SignUpDraft
	errs      domain.FieldErrors
	outcome   Outcome
	message   string
	submitErr error
	submitted bool
}

// New returns a Wizard positioned on RoleSelection with a fresh draft.
func New(v StepValidator, s Submitter) *Wizard {
	return &Wizard{validate: v, submit: s, draft: freshDraft()}
}

func freshDraft() domain.SignUpDraft {
	return domain.SignUpDraft{Role: domain.RoleSender}
}

// Current returns the active step.
func (w *Wizard) Current() StepInfo { return table[w.step] }

// Draft returns a copy of the draft.
func (w *Wizard) Draft() domain.SignUpDraft { return w.draft }

// Update edits the draft. Edits are ignored once the wizard has finished.
func (w *Wizard) Update(fn func(d *domain.SignUpDraft)) {
	if w.step == Finish {
		return
	}
	fn(&w.draft)
}

// Errors returns the field errors of the last failed Next.
func (w *Wizard) Errors() domain.FieldErrors { return w.errs }

// Outcome reports the submission result. It is OutcomeNone before Finish.
func (w *Wizard) Outcome() Outcome { return w.outcome }

// Message is the user-facing text for the outcome.
func (w *Wizard) Message() string { return w.message }

// Err returns the submission error behind an OutcomeError.
func (w *Wizard) Err() error { return w.submitErr }

// Next validates the current step and advances by one. On invalid input
// the step is kept and the field errors are returned. Advancing from
// BusinessInfo submits the draft; a failed submission still reaches
// Finish with OutcomeError. Next is a no-op on Finish.
func (w *Wizard) Next(ctx context.Context) error {
	if w.step == Finish {
		return nil
	}

	if err := w.validate.DraftFields(w.draft, table[w.step].Fields...); err != nil {
		var fe domain.FieldErrors
		if errors.As(err, &fe) {
			w.errs = fe
		}
		return err
	}
	w.errs = nil

	if w.step == BusinessInfo {
		w.finish(ctx)
		return nil
	}
	w.step++
	return nil
}

// Previous moves back one step without validating. It does nothing on the
// first step and on Finish.
func (w *Wizard) Previous() {
	if w.step == RoleSelection || w.step == Finish {
		return
	}
	w.errs = nil
	w.step--
}

// Reset returns to RoleSelection with a fresh draft. It is the only way
// out of Finish.
func (w *Wizard) Reset() {
	w.step = RoleSelection
	w.draft = freshDraft()
	w.errs = nil
	w.outcome = OutcomeNone
	w.message = ""
	w.submitErr = nil
	w.submitted = false
}

func (w *Wizard) finish(ctx context.Context) {
	w.step = Finish
	if w.submitted {
		return
	}
	w.submitted = true

	_, err := w.submit.SignUp(ctx, w.draft)
	w.draft = freshDraft()
	if err != nil {
		w.outcome = OutcomeError
		w.message = submitMessage(err)
		w.submitErr = err
		return
	}
	w.outcome = OutcomeSuccess
	w.message = domain.MsgSignUpSucceeded
}

func submitMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidFields),
		errors.Is(err, domain.ErrEmailInUse):
		return domain.UserMessage(err)
	}
	return domain.MsgSignUpFailed
}
