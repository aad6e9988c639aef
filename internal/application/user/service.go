package user

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/verification"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/pkg/id"
)

// Service manages back-office accounts. Only admins reach these operations;
// the permission check happens in the HTTP layer.
type Service interface {
	Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, userID string, req *domain.UpdateUserRequest) (*domain.User, error)
	Disable(ctx context.Context, userID string) error
}

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Scan(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, userID string) error
}

type service struct {
	store userStore
}

func NewService(store userStore) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	emailAddr := verification.Normalize(req.Email)
	if !domain.ValidRole(domain.Role(req.Role)) {
		return nil, fmt.Errorf("unknown role %q: %w", req.Role, domain.ErrBadRequest)
	}

	if _, err := s.store.GetByEmail(ctx, emailAddr); err == nil {
		return nil, fmt.Errorf("email already in use: %w", domain.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Email:        emailAddr,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         domain.Role(req.Role),
		Enable:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.store.Get(ctx, userID)
}

func (s *service) List(ctx context.Context) ([]domain.User, error) {
	return s.store.Scan(ctx)
}

func (s *service) Update(ctx context.Context, userID string, req *domain.UpdateUserRequest) (*domain.User, error) {
	if _, err := s.store.Get(ctx, userID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Role != nil {
		if !domain.ValidRole(domain.Role(*req.Role)) {
			return nil, fmt.Errorf("unknown role %q: %w", *req.Role, domain.ErrBadRequest)
		}
		updates["role"] = *req.Role
	}
	if req.Enable != nil {
		updates["enable"] = *req.Enable
	}
	if len(updates) > 0 {
		updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
		if err := s.store.Update(ctx, userID, updates); err != nil {
			return nil, err
		}
	}
	return s.store.Get(ctx, userID)
}

// Disable soft-deletes the account so its audit trail survives. A disabled
// user cannot log in.
func (s *service) Disable(ctx context.Context, userID string) error {
	if _, err := s.store.Get(ctx, userID); err != nil {
		return err
	}
	return s.store.SoftDelete(ctx, userID)
}
