package auth

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/verification"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
)

// Service authenticates back-office users. There is no public signup; the
// returned token carries the user's role for the permission middleware.
type Service interface {
	Login(ctx context.Context, req *domain.LoginRequest) (string, *domain.User, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type tokenSigner interface {
	Sign(userID, email, name, role string) (string, error)
}

type service struct {
	users  userStore
	signer tokenSigner
}

func NewService(users userStore, signer tokenSigner) Service {
	return &service{users: users, signer: signer}
}

func (s *service) Login(ctx context.Context, req *domain.LoginRequest) (string, *domain.User, error) {
	emailAddr := verification.Normalize(req.Email)

	u, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		// Same error as a bad password so probes cannot enumerate accounts.
		slog.Info("login failed", "email", emailAddr, "reason", "unknown_email")
		return "", nil, domain.ErrUnauthorized
	}
	if !u.Enable {
		slog.Info("login failed", "email", emailAddr, "reason", "disabled")
		return "", nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		slog.Info("login failed", "email", emailAddr, "reason", "bad_password")
		return "", nil, domain.ErrUnauthorized
	}

	token, err := s.signer.Sign(u.UserID, u.Email, u.Name, string(u.Role))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, u, nil
}
