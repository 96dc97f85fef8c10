package funnel

import (
	"context"
	"fmt"

	"github.com/safehaven/brandsite/pkg/logging"
)

// Engine drives the lead form state machine for a session: field updates
// with normalization, gated step transitions and draft persistence on
// every mutation.
type Engine struct {
	store  *StateStore
	logger *logging.Logger
}

// NewEngine creates a funnel engine. A nil store disables persistence but
// keeps the state machine fully functional.
func NewEngine(store *StateStore, logger *logging.Logger) *Engine {
	if logger == nil {
		logger = logging.Default()
	}
	return &Engine{store: store, logger: logger.Component("funnel")}
}

// Load restores the session's draft. The stored step number is validated
// against the gates, never trusted blindly: a step the data no longer
// supports is clamped down to the furthest legal one, while an explicit
// position at or below it (an advance, a back) is kept.
func (e *Engine) Load(ctx context.Context, sessionID string) (Draft, error) {
	d, err := e.store.LoadDraft(ctx, sessionID)
	if err != nil {
		return EmptyDraft(), err
	}
	if derived := d.DeriveStep(); d.CurrentStep > derived {
		d.CurrentStep = derived
	}
	return d, nil
}

// UpdateField applies one field mutation, normalizing phone and zip input,
// and persists the resulting draft. The returned FieldState reflects the
// stored value.
func (e *Engine) UpdateField(ctx context.Context, sessionID string, d Draft, field, value string) (Draft, FieldState, error) {
	switch field {
	case FieldName:
		d.Name = value
	case FieldEmail:
		d.Email = value
	case FieldPhone:
		formatted, ok := NormalizePhoneInput(value)
		if !ok {
			return d, StateFor(FieldPhone, d.Phone), fmt.Errorf("%w: phone exceeds ten digits", ErrInputRejected)
		}
		d.Phone = formatted
	case FieldZip:
		d.Zip = NormalizeZipInput(value)
	case FieldServiceType:
		d.ServiceType = value
	case FieldAddress:
		d.Address = value
	default:
		return d, FieldState{}, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	if err := e.store.SaveDraft(ctx, sessionID, d); err != nil {
		return d, StateFor(field, e.fieldValue(d, field)), err
	}
	return d, StateFor(field, e.fieldValue(d, field)), nil
}

// Advance moves the draft to the next step when every preceding gate
// holds, persisting the new position.
func (e *Engine) Advance(ctx context.Context, sessionID string, d Draft) (Draft, error) {
	target := d.CurrentStep + 1
	if target > StepService {
		return d, fmt.Errorf("%w: already at final step", ErrStepGated)
	}
	if !d.CanAdvance(target) {
		return d, fmt.Errorf("%w: step %d", ErrStepGated, target)
	}
	d.CurrentStep = target
	if err := e.store.SaveDraft(ctx, sessionID, d); err != nil {
		return d, err
	}
	return d, nil
}

// Back moves one step toward the start. Moving backward is never gated
// and loses no data.
func (e *Engine) Back(ctx context.Context, sessionID string, d Draft) (Draft, error) {
	if d.CurrentStep > StepContact {
		d.CurrentStep--
	}
	if err := e.store.SaveDraft(ctx, sessionID, d); err != nil {
		return d, err
	}
	return d, nil
}

// Reset discards the draft and returns the funnel to the first step.
func (e *Engine) Reset(ctx context.Context, sessionID string) (Draft, error) {
	if err := e.store.ClearDraft(ctx, sessionID); err != nil {
		return EmptyDraft(), err
	}
	e.logger.Debug("funnel reset", "session_id", sessionID)
	return EmptyDraft(), nil
}

func (e *Engine) fieldValue(d Draft, field string) string {
	switch field {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldPhone:
		return d.Phone
	case FieldZip:
		return d.Zip
	case FieldServiceType:
		return d.ServiceType
	case FieldAddress:
		return d.Address
	}
	return ""
}
