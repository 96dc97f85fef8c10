package analytics

import (
	"context"
	"time"

	"github.com/safehaven/brandsite/internal/attribution"
	"github.com/safehaven/brandsite/internal/brands"
	"github.com/safehaven/brandsite/internal/funnel"
	"github.com/safehaven/brandsite/pkg/logging"
)

// Tracker records funnel and navigation events. Sink failures are logged
// and never surfaced to the request path.
type Tracker struct {
	sink   Sink
	visits *funnel.StateStore
	logger *logging.Logger
	now    func() time.Time
}

// NewTracker creates a tracker. visits may be nil; returning-visitor
// events are then skipped.
func NewTracker(sink Sink, visits *funnel.StateStore, logger *logging.Logger) *Tracker {
	if logger == nil {
		logger = logging.Default()
	}
	if sink == nil {
		sink = NewLogSink(logger)
	}
	return &Tracker{
		sink:   sink,
		visits: visits,
		logger: logger.Component("analytics"),
		now:    time.Now,
	}
}

// PageView records a brand page view and, when the session has been here
// before, a returning-visitor event with the gap in days.
func (t *Tracker) PageView(ctx context.Context, sessionID string, brand brands.Brand, attr attribution.Attribution, pageLocation string) {
	if attr.Source == "" {
		attr = attribution.Direct()
	}
	t.emit(ctx, Event{
		Name:      EventPageView,
		SessionID: sessionID,
		Timestamp: t.now().UTC(),
		Fields: map[string]any{
			"brand_id":      brand.ID,
			"brand_name":    brand.Name,
			"utm_source":    attr.Source,
			"utm_medium":    attr.Medium,
			"utm_campaign":  attr.Campaign,
			"page_location": pageLocation,
		},
	})
	t.trackReturningVisitor(ctx, sessionID, brand.ID)
}

// FormStepCompleted records a funnel step transition.
func (t *Tracker) FormStepCompleted(ctx context.Context, sessionID, brandID, utmSource string, step int) {
	if utmSource == "" {
		utmSource = "direct"
	}
	t.emit(ctx, Event{
		Name:      EventFormStepCompleted,
		SessionID: sessionID,
		Timestamp: t.now().UTC(),
		Fields: map[string]any{
			"form_step":  step,
			"brand_id":   brandID,
			"utm_source": utmSource,
		},
	})
}

// LeadSubmitted records the conversion and its purchase-equivalent value.
func (t *Tracker) LeadSubmitted(ctx context.Context, sessionID, brandID, utmSource, leadID string) {
	if utmSource == "" {
		utmSource = "direct"
	}
	value := ConversionValue(brandID)
	t.emit(ctx, Event{
		Name:      EventLeadSubmitted,
		SessionID: sessionID,
		Timestamp: t.now().UTC(),
		Fields: map[string]any{
			"lead_id":          leadID,
			"form_step":        funnel.StepService,
			"brand_id":         brandID,
			"utm_source":       utmSource,
			"conversion_value": value,
		},
	})
	t.emit(ctx, Event{
		Name:      EventPurchase,
		SessionID: sessionID,
		Timestamp: t.now().UTC(),
		Fields: map[string]any{
			"transaction_id": leadID,
			"value":          value,
			"currency":       "USD",
			"item_brand":     brandID,
		},
	})
}

// PhoneClick records a tap on a brand's phone number.
func (t *Tracker) PhoneClick(ctx context.Context, sessionID, brandID, phoneNumber string) {
	t.emit(ctx, Event{
		Name:      EventPhoneClick,
		SessionID: sessionID,
		Timestamp: t.now().UTC(),
		Fields: map[string]any{
			"phone_number": phoneNumber,
			"brand_id":     brandID,
		},
	})
}

// BrandSwitch records a brand change and how it happened.
func (t *Tracker) BrandSwitch(ctx context.Context, sessionID, fromBrand, toBrand string, cause string) {
	t.emit(ctx, Event{
		Name:      EventBrandSwitch,
		SessionID: sessionID,
		Timestamp: t.now().UTC(),
		Fields: map[string]any{
			"from_brand":    fromBrand,
			"to_brand":      toBrand,
			"switch_method": cause,
		},
	})
}

// LocationPermission records the outcome of the permission prompt.
func (t *Tracker) LocationPermission(ctx context.Context, sessionID string, granted bool) {
	t.emit(ctx, Event{
		Name:      EventLocationPermission,
		SessionID: sessionID,
		Timestamp: t.now().UTC(),
		Fields: map[string]any{
			"permission_granted": granted,
		},
	})
}

func (t *Tracker) trackReturningVisitor(ctx context.Context, sessionID, brandID string) {
	if t.visits == nil {
		return
	}
	now := t.now().UTC()
	prev, seen, err := t.visits.TouchVisit(ctx, sessionID, brandID, now)
	if err != nil {
		t.logger.Warn("visit mark failed", "error", err, "session_id", sessionID)
		return
	}
	if !seen {
		return
	}
	days := int(now.Sub(prev).Hours() / 24)
	t.emit(ctx, Event{
		Name:      EventReturningVisitor,
		SessionID: sessionID,
		Timestamp: now,
		Fields: map[string]any{
			"brand_id":              brandID,
			"days_since_last_visit": days,
		},
	})
}

func (t *Tracker) emit(ctx context.Context, evt Event) {
	if err := t.sink.Publish(ctx, evt); err != nil {
		t.logger.Warn("analytics publish failed", "event", evt.Name, "error", err)
	}
}
