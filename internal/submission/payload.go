// Package submission assembles completed drafts into lead payloads and
// drives the single-flight submission pipeline.
package submission

import (
	"time"

	"github.com/safehaven/brandsite/internal/attribution"
	"github.com/safehaven/brandsite/internal/funnel"
)

// Payload is the wire shape posted to the lead intake endpoint. Attribution
// fields are always present; a session with no campaign parameters still
// reports utmSource "direct".
type Payload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Zip         string `json:"zip"`
	ServiceType string `json:"serviceType"`
	Address     string `json:"address"`
	UTMSource   string `json:"utmSource"`
	UTMMedium   string `json:"utmMedium"`
	UTMCampaign string `json:"utmCampaign"`
	SessionID   string `json:"sessionId"`
	Brand       string `json:"brand"`
	Timestamp   string `json:"timestamp"`
}

// NextSteps tells the lead what happens after submission.
type NextSteps struct {
	AssignedTo    string `json:"assignedTo"`
	ContactWindow string `json:"contactWindow"`
	CallbackPhone string `json:"callbackPhone"`
}

// Receipt is the intake endpoint's acknowledgement of a stored lead.
type Receipt struct {
	Success   bool      `json:"success"`
	LeadID    string    `json:"leadId"`
	Message   string    `json:"message"`
	NextSteps NextSteps `json:"nextSteps"`
}

// BuildPayload freezes a completed draft into a payload, stamping brand,
// session, attribution and submission time.
func BuildPayload(d funnel.Draft, brandID, sessionID string, attr attribution.Attribution, at time.Time) Payload {
	if attr.Source == "" {
		attr = attribution.Direct()
	}
	return Payload{
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		Zip:         d.Zip,
		ServiceType: d.ServiceType,
		Address:     d.Address,
		UTMSource:   attr.Source,
		UTMMedium:   attr.Medium,
		UTMCampaign: attr.Campaign,
		SessionID:   sessionID,
		Brand:       brandID,
		Timestamp:   at.UTC().Format(time.RFC3339),
	}
}
