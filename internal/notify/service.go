package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/safehaven/brandsite/internal/brands"
	"github.com/safehaven/brandsite/internal/leads"
	"github.com/safehaven/brandsite/pkg/logging"
)

// Service emails the sales team about every stored lead. Notification
// failures are logged and swallowed; they never fail the intake request.
type Service struct {
	email    EmailSender
	registry *brands.Registry
	salesTo  string
	logger   *logging.Logger
}

// NewService creates a notification service. A nil email sender or an
// empty recipient disables notifications.
func NewService(email EmailSender, registry *brands.Registry, salesTo string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:    email,
		registry: registry,
		salesTo:  salesTo,
		logger:   logger.Component("notify"),
	}
}

// LeadCreated sends the new-lead email.
func (s *Service) LeadCreated(ctx context.Context, lead *leads.Lead) {
	if s == nil || s.email == nil || s.salesTo == "" {
		return
	}

	brand, _ := s.registry.ByID(lead.Brand)
	msg := EmailMessage{
		To:      s.salesTo,
		ToName:  "Local Sales Team",
		Subject: fmt.Sprintf("New %s lead: %s", brand.Name, lead.Name),
		Body:    leadEmailBody(lead, brand),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("lead notification failed", "error", err, "lead_id", lead.PublicID)
		return
	}
	s.logger.Info("lead notification sent", "lead_id", lead.PublicID, "brand", lead.Brand)
}

func leadEmailBody(lead *leads.Lead, brand brands.Brand) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Lead %s (%s)\n\n", lead.PublicID, brand.Name)
	fmt.Fprintf(&b, "Name: %s\n", lead.Name)
	fmt.Fprintf(&b, "Email: %s\n", lead.Email)
	fmt.Fprintf(&b, "Phone: %s\n", lead.Phone)
	fmt.Fprintf(&b, "ZIP: %s\n", lead.Zip)
	fmt.Fprintf(&b, "Service: %s\n", lead.ServiceType)
	fmt.Fprintf(&b, "Address: %s\n", lead.Address)
	fmt.Fprintf(&b, "\nAttribution: %s / %s / %s\n", lead.UTMSource, lead.UTMMedium, lead.UTMCampaign)
	fmt.Fprintf(&b, "Session: %s\n", lead.SessionID)
	fmt.Fprintf(&b, "Contact within 24 hours. Callback line: %s\n", brand.Phone)
	return b.String()
}
