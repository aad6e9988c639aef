package teacher

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

// Service covers the teacher training program: OTP-gated public applications
// and enrollments, plus the admin review surface.
type Service interface {
	RequestApplicationOTP(ctx context.Context, emailAddr string) error
	Apply(ctx context.Context, req *domain.TeacherApplyRequest) (*domain.TeacherApplication, error)
	ListApplications(ctx context.Context) ([]domain.TeacherApplication, error)
	UpdateApplicationStatus(ctx context.Context, applicationID, status, reviewNote string) error

	RequestEnrollmentOTP(ctx context.Context, emailAddr string) error
	Enroll(ctx context.Context, req *domain.TeacherEnrollRequest) (*domain.TeacherEnrollment, error)
	ListEnrollments(ctx context.Context) ([]domain.TeacherEnrollment, error)
	UpdateEnrollmentStatus(ctx context.Context, enrollmentID, status string) error
}

type applicationStore interface {
	Put(ctx context.Context, a *domain.TeacherApplication) error
	Get(ctx context.Context, applicationID string) (*domain.TeacherApplication, error)
	FindByEmail(ctx context.Context, email string) (*domain.TeacherApplication, error)
	Scan(ctx context.Context) ([]domain.TeacherApplication, error)
	Update(ctx context.Context, applicationID string, updates map[string]interface{}) error
}

type enrollmentStore interface {
	Put(ctx context.Context, e *domain.TeacherEnrollment) error
	Get(ctx context.Context, enrollmentID string) (*domain.TeacherEnrollment, error)
	FindByEmailAndBatch(ctx context.Context, email, courseBatch string) (*domain.TeacherEnrollment, error)
	Scan(ctx context.Context) ([]domain.TeacherEnrollment, error)
	Update(ctx context.Context, enrollmentID string, updates map[string]interface{}) error
}

type verifier interface {
	Issue(ctx context.Context, identifier string, purpose domain.VerificationPurpose) error
	Verify(ctx context.Context, identifier string, purpose domain.VerificationPurpose, submitted string) error
}

type service struct {
	apps    applicationStore
	enrolls enrollmentStore
	codes   verifier
	mailer  email.Mailer
}

func NewService(apps applicationStore, enrolls enrollmentStore, codes verifier, mailer email.Mailer) Service {
	return &service{apps: apps, enrolls: enrolls, codes: codes, mailer: mailer}
}

// RequestApplicationOTP refuses to issue a code when a non-rejected
// application already exists for the email, so the duplicate is disclosed
// before the visitor fills out the form.
func (s *service) RequestApplicationOTP(ctx context.Context, emailAddr string) error {
	emailAddr = verification.Normalize(emailAddr)

	if err := s.checkDuplicateApplication(ctx, emailAddr); err != nil {
		return err
	}
	return s.codes.Issue(ctx, emailAddr, domain.PurposeTeacherApplication)
}

func (s *service) Apply(ctx context.Context, req *domain.TeacherApplyRequest) (*domain.TeacherApplication, error) {
	emailAddr := verification.Normalize(req.Email)

	if err := s.codes.Verify(ctx, emailAddr, domain.PurposeTeacherApplication, req.OTPCode); err != nil {
		return nil, err
	}
	if err := s.checkDuplicateApplication(ctx, emailAddr); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	app := &domain.TeacherApplication{
		ApplicationID: id.New(),
		Name:          req.Name,
		Email:         emailAddr,
		Phone:         req.Phone,
		City:          req.City,
		Country:       req.Country,
		Occupation:    req.Occupation,
		YearsPractice: req.YearsPractice,
		Motivation:    req.Motivation,
		Status:        domain.ApplicationPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.apps.Put(ctx, app); err != nil {
		return nil, fmt.Errorf("store teacher application: %w", err)
	}

	if err := s.mailer.Send(emailAddr, email.TemplateApplicationReceived, email.ConfirmationData{
		Name:  app.Name,
		Title: "Teacher Training Program",
	}); err != nil {
		slog.Warn("application confirmation email failed", "application_id", app.ApplicationID, "error", err)
	}
	return app, nil
}

// checkDuplicateApplication reports ErrDuplicateEntry when a non-rejected
// application already exists for the email. A lookup failure other than
// not-found is returned as-is: a transient store error must not silently
// disable the duplicate guard.
func (s *service) checkDuplicateApplication(ctx context.Context, emailAddr string) error {
	existing, err := s.apps.FindByEmail(ctx, emailAddr)
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

func (s *service) ListApplications(ctx context.Context) ([]domain.TeacherApplication, error) {
	return s.apps.Scan(ctx)
}

func (s *service) UpdateApplicationStatus(ctx context.Context, applicationID, status, reviewNote string) error {
	switch status {
	case domain.ApplicationPending, domain.ApplicationUnderReview,
		domain.ApplicationApproved, domain.ApplicationRejected:
	default:
		return fmt.Errorf("unknown application status %q: %w", status, domain.ErrBadRequest)
	}

	if _, err := s.apps.Get(ctx, applicationID); err != nil {
		return err
	}

	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}
	if reviewNote != "" {
		updates["review_note"] = reviewNote
	}
	return s.apps.Update(ctx, applicationID, updates)
}

func (s *service) RequestEnrollmentOTP(ctx context.Context, emailAddr string) error {
	return s.codes.Issue(ctx, verification.Normalize(emailAddr), domain.PurposeTeacherEnrollment)
}

// Enroll records an enrollment for a course batch. The same email may enroll
// in different batches, but not twice in the same one unless withdrawn.
func (s *service) Enroll(ctx context.Context, req *domain.TeacherEnrollRequest) (*domain.TeacherEnrollment, error) {
	emailAddr := verification.Normalize(req.Email)

	if err := s.codes.Verify(ctx, emailAddr, domain.PurposeTeacherEnrollment, req.OTPCode); err != nil {
		return nil, err
	}
	existing, err := s.enrolls.FindByEmailAndBatch(ctx, emailAddr, req.CourseBatch)
	switch {
	case err == nil:
		if existing.Active() {
			return nil, domain.ErrDuplicateEntry
		}
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("check existing enrollment: %w", err)
	}

	now := time.Now().UTC()
	enr := &domain.TeacherEnrollment{
		EnrollmentID: id.New(),
		Name:         req.Name,
		Email:        emailAddr,
		Phone:        req.Phone,
		CourseBatch:  req.CourseBatch,
		Status:       domain.EnrollmentEnrolled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.enrolls.Put(ctx, enr); err != nil {
		return nil, fmt.Errorf("store teacher enrollment: %w", err)
	}

	if err := s.mailer.Send(emailAddr, email.TemplateEnrollmentConfirmed, email.ConfirmationData{
		Name:  enr.Name,
		Title: enr.CourseBatch,
	}); err != nil {
		slog.Warn("enrollment confirmation email failed", "enrollment_id", enr.EnrollmentID, "error", err)
	}
	return enr, nil
}

func (s *service) ListEnrollments(ctx context.Context) ([]domain.TeacherEnrollment, error) {
	return s.enrolls.Scan(ctx)
}

func (s *service) UpdateEnrollmentStatus(ctx context.Context, enrollmentID, status string) error {
	switch status {
	case domain.EnrollmentEnrolled, domain.EnrollmentCompleted, domain.EnrollmentWithdrawn:
	default:
		return fmt.Errorf("unknown enrollment status %q: %w", status, domain.ErrBadRequest)
	}

	if _, err := s.enrolls.Get(ctx, enrollmentID); err != nil {
		return err
	}
	return s.enrolls.Update(ctx, enrollmentID, map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	})
}
