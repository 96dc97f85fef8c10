package leads

import (
	"strings"
	"time"
)

// Lead is a stored lead submission from the funnel.
type Lead struct {
	ID          string    `json:"id"`
	PublicID    string    `json:"leadId"`
	Brand       string    `json:"brand"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Zip         string    `json:"zip"`
	ServiceType string    `json:"serviceType"`
	Address     string    `json:"address"`
	UTMSource   string    `json:"utmSource"`
	UTMMedium   string    `json:"utmMedium"`
	UTMCampaign string    `json:"utmCampaign"`
	SessionID   string    `json:"sessionId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateLeadRequest is the intake request body. Its field names match the
// funnel's submission payload.
type CreateLeadRequest struct {
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

// Validate checks the request and fills attribution defaults. A request
// with no campaign parameters is still attributed, as "direct".
func (r *CreateLeadRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if r.Email == "" && r.Phone == "" {
		return ErrMissingContact
	}
	if strings.TrimSpace(r.Brand) == "" {
		return ErrMissingBrand
	}
	if r.UTMSource == "" {
		r.UTMSource = "direct"
	}
	return nil
}

// ListLeadsFilter narrows and pages a brand's lead listing.
type ListLeadsFilter struct {
	ServiceType string
	Limit       int
	Offset      int
}
