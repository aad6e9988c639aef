package verification

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/infrastructure/email"
)

// Service issues and verifies one-time codes for the public submission
// workflows. Codes are delivered out-of-band only; Issue never returns the
// code value to its caller.
type Service interface {
	Issue(ctx context.Context, identifier string, purpose domain.VerificationPurpose) error
	Verify(ctx context.Context, identifier string, purpose domain.VerificationPurpose, submitted string) error
}

type codeStore interface {
	Put(ctx context.Context, v *domain.VerificationCode) error
	Get(ctx context.Context, identifier string, purpose domain.VerificationPurpose) (*domain.VerificationCode, error)
	MarkConsumed(ctx context.Context, identifier string, purpose domain.VerificationPurpose) error
}

type service struct {
	store  codeStore
	mailer email.Mailer
	ttl    time.Duration
	now    func() time.Time
}

func NewService(store codeStore, mailer email.Mailer, ttl time.Duration) Service {
	return &service{store: store, mailer: mailer, ttl: ttl, now: time.Now}
}

// Normalize lowercases and trims an identifier so storage keys and GSI
// lookups agree regardless of how the visitor typed their email.
func Normalize(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

func (s *service) Issue(ctx context.Context, identifier string, purpose domain.VerificationPurpose) error {
	if !domain.ValidPurpose(purpose) {
		return fmt.Errorf("unknown verification purpose %q: %w", purpose, domain.ErrBadRequest)
	}
	identifier = Normalize(identifier)

	code, err := generateCode()
	if err != nil {
		return err
	}

	now := s.now().UTC()
	v := &domain.VerificationCode{
		Identifier: identifier,
		Purpose:    purpose,
		Code:       code,
		ExpiresAt:  now.Add(s.ttl).Unix(),
		Consumed:   false,
		CreatedAt:  now,
	}
	// Put overwrites any prior code for the same (identifier, purpose), so a
	// re-request supersedes rather than stacks.
	if err := s.store.Put(ctx, v); err != nil {
		return err
	}

	if err := s.mailer.Send(identifier, email.TemplateOTP, email.OTPData{
		Code:       code,
		TTLMinutes: int(s.ttl.Minutes()),
	}); err != nil {
		// Delivery failure fails the issuance; the stored code is superseded
		// by the next attempt.
		return fmt.Errorf("deliver verification code: %w", err)
	}
	return nil
}

func (s *service) Verify(ctx context.Context, identifier string, purpose domain.VerificationPurpose, submitted string) error {
	identifier = Normalize(identifier)

	v, err := s.store.Get(ctx, identifier, purpose)
	if err != nil {
		slog.Info("verification failed", "identifier", identifier, "purpose", purpose, "reason", "not_found")
		return domain.ErrCodeNotFound
	}
	if v.Consumed {
		slog.Info("verification failed", "identifier", identifier, "purpose", purpose, "reason", "already_consumed")
		return domain.ErrCodeConsumed
	}
	if v.Expired(s.now()) {
		slog.Info("verification failed", "identifier", identifier, "purpose", purpose, "reason", "expired")
		return domain.ErrCodeExpired
	}
	if v.Code != strings.TrimSpace(submitted) {
		slog.Info("verification failed", "identifier", identifier, "purpose", purpose, "reason", "mismatch")
		return domain.ErrCodeMismatch
	}
	if err := s.store.MarkConsumed(ctx, identifier, purpose); err != nil {
		// A concurrent verify may have consumed it first; treat as replay.
		slog.Info("verification failed", "identifier", identifier, "purpose", purpose, "reason", "consume_race")
		return domain.ErrCodeConsumed
	}
	return nil
}

// generateCode produces a 6-digit numeric code. Entropy alone is not the
// defense; the verify endpoints are rate-limited.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
