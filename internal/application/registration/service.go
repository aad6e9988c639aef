package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/verification"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/infrastructure/email"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/infrastructure/sns"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/pkg/id"
)

// Service handles event registrations: the OTP handshake, the registration
// itself, and the admin management surface.
type Service interface {
	RequestOTP(ctx context.Context, eventID, emailAddr string) error
	Register(ctx context.Context, eventID string, req *domain.RegisterRequest) (*domain.Registration, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error)
	UpdateStatus(ctx context.Context, registrationID, status string) error
}

type eventStore interface {
	Get(ctx context.Context, eventID string) (*domain.Event, error)
	IncrementRegistrations(ctx context.Context, eventID string) error
	DecrementRegistrations(ctx context.Context, eventID string) error
}

type registrationStore interface {
	Put(ctx context.Context, reg *domain.Registration) error
	Get(ctx context.Context, registrationID string) (*domain.Registration, error)
	FindByEmailAndEvent(ctx context.Context, email, eventID string) (*domain.Registration, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error)
	Update(ctx context.Context, registrationID string, updates map[string]interface{}) error
}

type verifier interface {
	Issue(ctx context.Context, identifier string, purpose domain.VerificationPurpose) error
	Verify(ctx context.Context, identifier string, purpose domain.VerificationPurpose, submitted string) error
}

type service struct {
	events     eventStore
	regs       registrationStore
	codes      verifier
	mailer     email.Mailer
	sms        sns.SMSSender
	smsEnabled bool
}

func NewService(events eventStore, regs registrationStore, codes verifier, mailer email.Mailer, sms sns.SMSSender, smsEnabled bool) Service {
	return &service{events: events, regs: regs, codes: codes, mailer: mailer, sms: sms, smsEnabled: smsEnabled}
}

// RequestOTP checks the event is open and the visitor is not already
// registered before issuing a code. Duplicate registration is disclosed here
// so the visitor is not sent a code they cannot use.
func (s *service) RequestOTP(ctx context.Context, eventID, emailAddr string) error {
	emailAddr = verification.Normalize(emailAddr)

	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return err
	}
	if !event.Open() {
		return domain.ErrTargetClosed
	}

	if err := s.checkDuplicate(ctx, emailAddr, eventID); err != nil {
		return err
	}

	return s.codes.Issue(ctx, emailAddr, domain.PurposeEventRegistration)
}

func (s *service) Register(ctx context.Context, eventID string, req *domain.RegisterRequest) (*domain.Registration, error) {
	emailAddr := verification.Normalize(req.Email)

	if err := s.codes.Verify(ctx, emailAddr, domain.PurposeEventRegistration, req.OTPCode); err != nil {
		return nil, err
	}

	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.Open() {
		return nil, domain.ErrTargetClosed
	}

	if err := s.checkDuplicate(ctx, emailAddr, eventID); err != nil {
		return nil, err
	}

	// The seat is claimed with a conditional counter update, so two
	// concurrent registrations for the last seat cannot both succeed.
	if err := s.events.IncrementRegistrations(ctx, eventID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reg := &domain.Registration{
		RegistrationID: id.New(),
		EventID:        eventID,
		Name:           req.Name,
		Email:          emailAddr,
		Phone:          req.Phone,
		AgeGroup:       req.AgeGroup,
		City:           req.City,
		Country:        req.Country,
		Status:         domain.RegistrationConfirmed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.regs.Put(ctx, reg); err != nil {
		// Release the claimed seat; best effort.
		if derr := s.events.DecrementRegistrations(ctx, eventID); derr != nil {
			slog.Error("failed to release seat after registration write failure", "event_id", eventID, "error", derr)
		}
		return nil, fmt.Errorf("store registration: %w", err)
	}

	s.notify(ctx, reg, event)
	return reg, nil
}

// checkDuplicate reports ErrDuplicateEntry when the email already has an
// active registration for the event. A lookup failure other than not-found is
// returned as-is: a transient store error must not silently disable the
// duplicate guard.
func (s *service) checkDuplicate(ctx context.Context, emailAddr, eventID string) error {
	existing, err := s.regs.FindByEmailAndEvent(ctx, emailAddr, eventID)
	switch {
	case err == nil:
		if existing.Active() {
			return domain.ErrDuplicateEntry
		}
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("check existing registration: %w", err)
	}
	return nil
}

// notify sends the confirmation email and optional SMS. The registration is
// already committed, so delivery failures are logged and swallowed.
func (s *service) notify(ctx context.Context, reg *domain.Registration, event *domain.Event) {
	if err := s.mailer.Send(reg.Email, email.TemplateRegistrationConfirmed, email.ConfirmationData{
		Name:  reg.Name,
		Title: event.Title,
	}); err != nil {
		slog.Warn("registration confirmation email failed", "registration_id", reg.RegistrationID, "error", err)
	}

	if s.smsEnabled && s.sms != nil && reg.Phone != "" {
		msg := fmt.Sprintf("You are registered for %s. See you there!", event.Title)
		if err := s.sms.SendSMS(ctx, reg.Phone, msg); err != nil {
			slog.Warn("registration confirmation sms failed", "registration_id", reg.RegistrationID, "error", err)
		}
	}
}

func (s *service) ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	return s.regs.ListByEvent(ctx, eventID)
}

// UpdateStatus is the admin transition. Cancelling an active registration
// frees its seat on the event counter; reinstating a cancelled one re-claims
// a seat and fails with ErrCapacityFull when the event has filled since.
func (s *service) UpdateStatus(ctx context.Context, registrationID, status string) error {
	switch status {
	case domain.RegistrationPending, domain.RegistrationConfirmed, domain.RegistrationCancelled:
	default:
		return fmt.Errorf("unknown registration status %q: %w", status, domain.ErrBadRequest)
	}

	reg, err := s.regs.Get(ctx, registrationID)
	if err != nil {
		return err
	}
	if reg.Status == status {
		return nil
	}

	reclaiming := !reg.Active() && status != domain.RegistrationCancelled
	if reclaiming {
		if err := s.events.IncrementRegistrations(ctx, reg.EventID); err != nil {
			return err
		}
	}

	if err := s.regs.Update(ctx, registrationID, map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		if reclaiming {
			// Release the re-claimed seat; best effort.
			if derr := s.events.DecrementRegistrations(ctx, reg.EventID); derr != nil {
				slog.Error("failed to release seat after status update failure", "registration_id", registrationID, "error", derr)
			}
		}
		return err
	}

	if status == domain.RegistrationCancelled && reg.Active() {
		if err := s.events.DecrementRegistrations(ctx, reg.EventID); err != nil {
			slog.Error("failed to release seat for cancelled registration", "registration_id", registrationID, "error", err)
		}
	}
	return nil
}
