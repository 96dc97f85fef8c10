package funnel

import "errors"

var (
	// ErrUnknownField is returned when a field name outside the form's
	// schema is updated.
	ErrUnknownField = errors.New("funnel: unknown field")

	// ErrStepGated is returned when an advance is requested before the
	// preceding steps' requirements are met.
	ErrStepGated = errors.New("funnel: step requirements not met")

	// ErrInputRejected is returned when an input update is refused outright,
	// such as a phone value that already carries ten digits.
	ErrInputRejected = errors.New("funnel: input rejected")
)
