package submission

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/safehaven/brandsite/internal/attribution"
	"github.com/safehaven/brandsite/internal/funnel"
	"github.com/safehaven/brandsite/pkg/logging"
)

var (
	// ErrIncomplete is returned when the draft does not pass every step gate.
	ErrIncomplete = errors.New("submission: draft is not complete")

	// ErrInFlight is returned when a submission for the same session is
	// already running.
	ErrInFlight = errors.New("submission: already in flight")
)

// Pipeline validates a completed draft, posts it once per session at a
// time, and clears the draft only after the intake endpoint accepts it.
// A failed attempt leaves the draft untouched so the user can retry.
type Pipeline struct {
	client IntakeClient
	store  *funnel.StateStore
	logger *logging.Logger
	now    func() time.Time

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewPipeline creates a submission pipeline.
func NewPipeline(client IntakeClient, store *funnel.StateStore, logger *logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.Default()
	}
	return &Pipeline{
		client:   client,
		store:    store,
		logger:   logger.Component("submission"),
		now:      time.Now,
		inFlight: make(map[string]struct{}),
	}
}

// Submit runs the full pipeline for one session. Concurrent calls for the
// same session beyond the first fail fast with ErrInFlight.
func (p *Pipeline) Submit(ctx context.Context, sessionID, brandID string, d funnel.Draft, attr attribution.Attribution) (Receipt, error) {
	if !d.Complete() {
		return Receipt{}, ErrIncomplete
	}

	if !p.acquire(sessionID) {
		return Receipt{}, ErrInFlight
	}
	defer p.release(sessionID)

	payload := BuildPayload(d, brandID, sessionID, attr, p.now())
	receipt, err := p.client.Submit(ctx, payload)
	if err != nil {
		p.logger.Error("lead submission failed", "session_id", sessionID, "brand", brandID, "error", err)
		return Receipt{}, fmt.Errorf("submission: %w", err)
	}

	// The accepted lead is the durable record now; a failed clear only
	// risks a duplicate draft, never a lost lead.
	if err := p.store.ClearDraft(ctx, sessionID); err != nil {
		p.logger.Warn("draft clear after submission failed", "session_id", sessionID, "error", err)
	}

	p.logger.Info("lead submitted",
		"session_id", sessionID,
		"brand", brandID,
		"lead_id", receipt.LeadID,
	)
	return receipt, nil
}

func (p *Pipeline) acquire(sessionID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, busy := p.inFlight[sessionID]; busy {
		return false
	}
	p.inFlight[sessionID] = struct{}{}
	return true
}

func (p *Pipeline) release(sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.inFlight, sessionID)
}
