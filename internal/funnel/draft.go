// Package funnel implements the gated multi-step lead form: per-field
// validation, cumulative step gating, input normalization and draft
// persistence. The persisted step number is treated as a hint validated
// against the gates; it can never sit past what the draft's contents allow.
package funnel

import "strings"

// Funnel steps. Submission is terminal and immediately resets to StepContact
// with an empty draft, so it never appears as a stored step.
const (
	StepContact  = 1 // name, email
	StepLocation = 2 // phone, zip
	StepService  = 3 // service type, address
)

// Draft is the in-progress state of the lead form. Every field mutation is
// persisted; the draft is cleared only on successful submission.
type Draft struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Zip         string `json:"zip"`
	ServiceType string `json:"serviceType"`
	Address     string `json:"address"`
	CurrentStep int    `json:"currentStep"`
}

// EmptyDraft returns a fresh draft at the first step.
func EmptyDraft() Draft {
	return Draft{CurrentStep: StepContact}
}

// Empty reports whether no field has been filled in.
func (d Draft) Empty() bool {
	return d.Name == "" && d.Email == "" && d.Phone == "" &&
		d.Zip == "" && d.ServiceType == "" && d.Address == ""
}

// gate reports whether the requirements of a single step are met.
func (d Draft) gate(step int) bool {
	switch step {
	case StepContact:
		return d.Name != "" && ValidateField(FieldName, d.Name).IsValid &&
			d.Email != "" && ValidateField(FieldEmail, d.Email).IsValid
	case StepLocation:
		return len(digitsOf(d.Phone)) == 10 && ValidateField(FieldZip, d.Zip).IsValid
	case StepService:
		return ValidateField(FieldServiceType, d.ServiceType).IsValid &&
			ValidateField(FieldAddress, d.Address).IsValid
	default:
		return false
	}
}

// CanAdvance reports whether the draft may move to the target step. Gating
// is cumulative: every step before the target must hold.
func (d Draft) CanAdvance(target int) bool {
	if target < StepContact || target > StepService {
		return false
	}
	for step := StepContact; step < target; step++ {
		if !d.gate(step) {
			return false
		}
	}
	return true
}

// Complete reports whether every step gates true, i.e. the draft is
// submittable.
func (d Draft) Complete() bool {
	return d.gate(StepContact) && d.gate(StepLocation) && d.gate(StepService)
}

// DeriveStep recomputes the furthest step the draft's contents legally
// permit, ignoring the stored step number.
func (d Draft) DeriveStep() int {
	step := StepContact
	for next := StepLocation; next <= StepService; next++ {
		if !d.CanAdvance(next) {
			break
		}
		step = next
	}
	return step
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
