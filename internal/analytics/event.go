// Package analytics publishes funnel and navigation events to a
// configurable sink.
package analytics

import "time"

// Event names pushed to the sink.
const (
	EventPageView           = "page_view"
	EventFormStepCompleted  = "form_step_completed"
	EventLeadSubmitted      = "lead_submitted"
	EventPurchase           = "purchase"
	EventPhoneClick         = "phone_click"
	EventBrandSwitch        = "brand_switch"
	EventLocationPermission = "location_permission"
	EventReturningVisitor   = "returning_visitor"
)

// Event is a single analytics datapoint. Fields captures the event-specific
// payload.
type Event struct {
	Name      string         `json:"event"`
	SessionID string         `json:"session_id,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// conversionValues is the per-brand lead value in USD used for purchase
// tracking. Unknown brands fall back to the lowest tier.
var conversionValues = map[string]int{
	"safehaven":    250,
	"topsecurity":  275,
	"bestsecurity": 300,
	"redhawk":      225,
}

// ConversionValue returns the lead value for a brand.
func ConversionValue(brandID string) int {
	if v, ok := conversionValues[brandID]; ok {
		return v
	}
	return 250
}
