package notify

import (
	"context"
	"fmt"

	"github.com/clearslot/appointments/internal/appointments"
	"github.com/clearslot/appointments/pkg/logging"
)

// Service sends booking confirmations to the practice mailbox. Delivery is
// best effort: a failed send is logged and never surfaces to the booking
// path.
type Service struct {
	email     EmailSender
	recipient string
	logger    *logging.Logger
}

// NewService creates a notification service. Returns nil when no recipient
// is configured so callers can skip wiring notifications entirely.
func NewService(email EmailSender, recipient string, logger *logging.Logger) *Service {
	if email == nil || recipient == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{email: email, recipient: recipient, logger: logger}
}

// BookingConfirmed emails the practice about a freshly booked appointment.
func (s *Service) BookingConfirmed(ctx context.Context, appt *appointments.Appointment) {
	if s == nil || appt == nil {
		return
	}

	when := appt.StartsAt.Format("Monday, January 2 at 3:04 PM")
	subject := fmt.Sprintf("New booking: %s on %s", appt.PatientName, appt.StartsAt.Format("Jan 2"))
	body := fmt.Sprintf(`A new appointment has been booked.

Patient: %s
Type: %s
Starts: %s
Ends: %s

Booking ID: %s`,
		appt.PatientName, appt.Type, when, appt.EndsAt.Format("3:04 PM"), appt.ID)

	msg := EmailMessage{
		To:      s.recipient,
		Subject: subject,
		Body:    body,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("booking confirmation failed", "error", err, "appointment_id", appt.ID)
		return
	}
	s.logger.Info("booking confirmation sent", "to", s.recipient, "appointment_id", appt.ID)
}

var _ appointments.Notifier = (*Service)(nil)
