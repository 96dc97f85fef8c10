package funnel

import (
	"regexp"

	"github.com/safehaven/brandsite/internal/brands"
)

// Field names accepted by the validation engine.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldZip         = "zip"
	FieldServiceType = "serviceType"
	FieldAddress     = "address"
)

// feedbackThreshold is the minimum input length before validation feedback
// becomes visible, so a field the user has barely started never flashes an
// error.
const feedbackThreshold = 3

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipRe   = regexp.MustCompile(`^\d{5}$`)
)

// Result is the outcome of validating one field value.
type Result struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
}

// FieldState is the user-facing validation state of a field. It is derived
// on every keystroke and never persisted.
type FieldState struct {
	Field           string `json:"field"`
	IsValid         bool   `json:"isValid"`
	Error           string `json:"error,omitempty"`
	FeedbackVisible bool   `json:"feedbackVisible"`
}

func valid() Result             { return Result{IsValid: true} }
func invalid(msg string) Result { return Result{Error: msg} }

// ValidateField applies the full rule for a field. Unknown fields are
// invalid.
func ValidateField(field, value string) Result {
	switch field {
	case FieldName:
		if len(value) < 2 {
			return invalid("Name must be at least 2 characters")
		}
		if !nameRe.MatchString(value) {
			return invalid("Name can only contain letters, spaces, hyphens, and apostrophes")
		}
		return valid()

	case FieldEmail:
		if !emailRe.MatchString(value) {
			return invalid("Please enter a valid email address")
		}
		return valid()

	case FieldPhone:
		digits := digitsOf(value)
		if len(digits) < 10 {
			return invalid("Phone number must be 10 digits")
		}
		if len(digits) > 10 {
			return invalid("Phone number cannot exceed 10 digits")
		}
		return valid()

	case FieldZip:
		if !zipRe.MatchString(value) {
			return invalid("ZIP code must be 5 digits")
		}
		return valid()

	case FieldServiceType:
		if !brands.ValidServiceType(value) {
			return invalid("Please select a service type")
		}
		return valid()

	case FieldAddress:
		if len(value) < 5 {
			return invalid("Please enter a complete address")
		}
		return valid()

	default:
		return invalid("Unknown field")
	}
}

// StateFor derives the visible validation state for a field value. Below
// the feedback threshold the field reports invalid with no error text and
// feedback stays hidden.
func StateFor(field, value string) FieldState {
	if len(value) < feedbackThreshold {
		return FieldState{Field: field}
	}
	res := ValidateField(field, value)
	return FieldState{
		Field:           field,
		IsValid:         res.IsValid,
		Error:           res.Error,
		FeedbackVisible: true,
	}
}
