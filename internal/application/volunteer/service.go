package volunteer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/verification"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/infrastructure/email"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/pkg/id"
)

// Service manages volunteer opportunities and the OTP-gated applications
// against them.
type Service interface {
	CreateOpportunity(ctx context.Context, in *domain.OpportunityInput) (*domain.VolunteerOpportunity, error)
	GetOpportunity(ctx context.Context, opportunityID string) (*domain.VolunteerOpportunity, error)
	ListOpenOpportunities(ctx context.Context) ([]domain.VolunteerOpportunity, error)
	ListAllOpportunities(ctx context.Context) ([]domain.VolunteerOpportunity, error)
	UpdateOpportunity(ctx context.Context, opportunityID string, req *domain.UpdateOpportunityRequest) error
	DeleteOpportunity(ctx context.Context, opportunityID string) error

	RequestOTP(ctx context.Context, opportunityID, emailAddr string) error
	Apply(ctx context.Context, opportunityID string, req *domain.VolunteerApplyRequest) (*domain.VolunteerApplication, error)
	ListApplications(ctx context.Context, opportunityID string) ([]domain.VolunteerApplication, error)
	UpdateApplicationStatus(ctx context.Context, applicationID, status string) error
}

type opportunityStore interface {
	Put(ctx context.Context, o *domain.VolunteerOpportunity) error
	Get(ctx context.Context, opportunityID string) (*domain.VolunteerOpportunity, error)
	ListByStatus(ctx context.Context, status string) ([]domain.VolunteerOpportunity, error)
	Scan(ctx context.Context) ([]domain.VolunteerOpportunity, error)
	Update(ctx context.Context, opportunityID string, updates map[string]interface{}) error
	IncrementApplications(ctx context.Context, opportunityID string) error
	DecrementApplications(ctx context.Context, opportunityID string) error
	Delete(ctx context.Context, opportunityID string) error
}

type applicationStore interface {
	Put(ctx context.Context, a *domain.VolunteerApplication) error
	Get(ctx context.Context, applicationID string) (*domain.VolunteerApplication, error)
	FindByEmailAndOpportunity(ctx context.Context, email, opportunityID string) (*domain.VolunteerApplication, error)
	ListByOpportunity(ctx context.Context, opportunityID string) ([]domain.VolunteerApplication, error)
	Update(ctx context.Context, applicationID string, updates map[string]interface{}) error
}

type verifier interface {
	Issue(ctx context.Context, identifier string, purpose domain.VerificationPurpose) error
	Verify(ctx context.Context, identifier string, purpose domain.VerificationPurpose, submitted string) error
}

type service struct {
	opps   opportunityStore
	apps   applicationStore
	codes  verifier
	mailer email.Mailer
}

func NewService(opps opportunityStore, apps applicationStore, codes verifier, mailer email.Mailer) Service {
	return &service{opps: opps, apps: apps, codes: codes, mailer: mailer}
}

func (s *service) CreateOpportunity(ctx context.Context, in *domain.OpportunityInput) (*domain.VolunteerOpportunity, error) {
	now := time.Now().UTC()
	o := &domain.VolunteerOpportunity{
		OpportunityID: id.New(),
		Title:         in.Title,
		Description:   in.Description,
		Commitment:    in.Commitment,
		Status:        domain.OpportunityOpen,
		MaxVolunteers: in.MaxVolunteers,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.opps.Put(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) GetOpportunity(ctx context.Context, opportunityID string) (*domain.VolunteerOpportunity, error) {
	return s.opps.Get(ctx, opportunityID)
}

func (s *service) ListOpenOpportunities(ctx context.Context) ([]domain.VolunteerOpportunity, error) {
	return s.opps.ListByStatus(ctx, domain.OpportunityOpen)
}

func (s *service) ListAllOpportunities(ctx context.Context) ([]domain.VolunteerOpportunity, error) {
	return s.opps.Scan(ctx)
}

func (s *service) UpdateOpportunity(ctx context.Context, opportunityID string, req *domain.UpdateOpportunityRequest) error {
	if _, err := s.opps.Get(ctx, opportunityID); err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Commitment != nil {
		updates["commitment"] = *req.Commitment
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.MaxVolunteers != nil {
		updates["max_volunteers"] = *req.MaxVolunteers
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	return s.opps.Update(ctx, opportunityID, updates)
}

func (s *service) DeleteOpportunity(ctx context.Context, opportunityID string) error {
	if _, err := s.opps.Get(ctx, opportunityID); err != nil {
		return err
	}
	return s.opps.Delete(ctx, opportunityID)
}

func (s *service) RequestOTP(ctx context.Context, opportunityID, emailAddr string) error {
	emailAddr = verification.Normalize(emailAddr)

	opp, err := s.opps.Get(ctx, opportunityID)
	if err != nil {
		return err
	}
	if !opp.Open() {
		return domain.ErrTargetClosed
	}
	if err := s.checkDuplicate(ctx, emailAddr, opportunityID); err != nil {
		return err
	}
	return s.codes.Issue(ctx, emailAddr, domain.PurposeVolunteerApplication)
}

func (s *service) Apply(ctx context.Context, opportunityID string, req *domain.VolunteerApplyRequest) (*domain.VolunteerApplication, error) {
	emailAddr := verification.Normalize(req.Email)

	if err := s.codes.Verify(ctx, emailAddr, domain.PurposeVolunteerApplication, req.OTPCode); err != nil {
		return nil, err
	}

	opp, err := s.opps.Get(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if !opp.Open() {
		return nil, domain.ErrTargetClosed
	}
	if err := s.checkDuplicate(ctx, emailAddr, opportunityID); err != nil {
		return nil, err
	}

	// Conditional counter claim, same shape as event seats.
	if err := s.opps.IncrementApplications(ctx, opportunityID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	app := &domain.VolunteerApplication{
		ApplicationID: id.New(),
		OpportunityID: opportunityID,
		Name:          req.Name,
		Email:         emailAddr,
		Phone:         req.Phone,
		Skills:        req.Skills,
		Availability:  req.Availability,
		Status:        domain.VolunteerPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.apps.Put(ctx, app); err != nil {
		// Release the claimed slot; best effort.
		if derr := s.opps.DecrementApplications(ctx, opportunityID); derr != nil {
			slog.Error("failed to release slot after application write failure", "opportunity_id", opportunityID, "error", derr)
		}
		return nil, fmt.Errorf("store volunteer application: %w", err)
	}

	if err := s.mailer.Send(emailAddr, email.TemplateVolunteerReceived, email.ConfirmationData{
		Name:  app.Name,
		Title: opp.Title,
	}); err != nil {
		slog.Warn("volunteer confirmation email failed", "application_id", app.ApplicationID, "error", err)
	}
	return app, nil
}

// checkDuplicate reports ErrDuplicateEntry when the email already has an
// active application for the opportunity. A lookup failure other than
// not-found is returned as-is: a transient store error must not silently
// disable the duplicate guard.
func (s *service) checkDuplicate(ctx context.Context, emailAddr, opportunityID string) error {
	existing, err := s.apps.FindByEmailAndOpportunity(ctx, emailAddr, opportunityID)
	switch {
	case err == nil:
		if existing.Active() {
			return domain.ErrDuplicateEntry
		}
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("check existing application: %w", err)
	}
	return nil
}

func (s *service) ListApplications(ctx context.Context, opportunityID string) ([]domain.VolunteerApplication, error) {
	return s.apps.ListByOpportunity(ctx, opportunityID)
}

// UpdateApplicationStatus is the admin transition. A rejected application no
// longer counts against capacity, so rejecting an active one releases its
// slot and moving a rejected one back to an active status re-claims a slot
// (and fails with ErrCapacityFull when none is left).
func (s *service) UpdateApplicationStatus(ctx context.Context, applicationID, status string) error {
	switch status {
	case domain.VolunteerPending, domain.VolunteerApproved,
		domain.VolunteerRejected, domain.VolunteerContacted:
	default:
		return fmt.Errorf("unknown volunteer application status %q: %w", status, domain.ErrBadRequest)
	}

	app, err := s.apps.Get(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.Status == status {
		return nil
	}

	reclaiming := !app.Active() && status != domain.VolunteerRejected
	if reclaiming {
		if err := s.opps.IncrementApplications(ctx, app.OpportunityID); err != nil {
			return err
		}
	}

	if err := s.apps.Update(ctx, applicationID, map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		if reclaiming {
			// Release the re-claimed slot; best effort.
			if derr := s.opps.DecrementApplications(ctx, app.OpportunityID); derr != nil {
				slog.Error("failed to release slot after status update failure", "application_id", applicationID, "error", derr)
			}
		}
		return err
	}

	if app.Active() && status == domain.VolunteerRejected {
		if err := s.opps.DecrementApplications(ctx, app.OpportunityID); err != nil {
			slog.Error("failed to release slot for rejected application", "application_id", applicationID, "error", err)
		}
	}
	return nil
}
