package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Scan(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if us, _ := args.Get(0).([]domain.User); us != nil {
		return us, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}
func (m *mockUserStore) SoftDelete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func TestCreate_HashesPasswordAndLowercasesEmail(t *testing.T) {
	store := &mockUserStore{}
	store.On("GetByEmail", mock.Anything, "editor@example.com").Return(nil, domain.ErrNotFound)

	var put *domain.User
	store.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) { put = args.Get(1).(*domain.User) }).
		Return(nil)

	svc := NewService(store)
	u, err := svc.Create(context.Background(), &domain.CreateUserRequest{
		Email:    "Editor@Example.com",
		Name:     "Editor",
		Password: "sufficiently-long",
		Role:     "content_manager",
	})

	require.NoError(t, err)
	assert.Equal(t, "editor@example.com", u.Email)
	assert.Equal(t, domain.RoleContentManager, u.Role)
	assert.True(t, u.Enable)
	require.NotNil(t, put)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(put.PasswordHash), []byte("sufficiently-long")))
	assert.NotEqual(t, "sufficiently-long", put.PasswordHash)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	store := &mockUserStore{}
	store.On("GetByEmail", mock.Anything, "editor@example.com").
		Return(&domain.User{UserID: "u1", Email: "editor@example.com"}, nil)

	svc := NewService(store)
	_, err := svc.Create(context.Background(), &domain.CreateUserRequest{
		Email:    "editor@example.com",
		Name:     "Editor",
		Password: "sufficiently-long",
		Role:     "admin",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreate_UnknownRole(t *testing.T) {
	svc := NewService(&mockUserStore{})
	_, err := svc.Create(context.Background(), &domain.CreateUserRequest{
		Email:    "x@example.com",
		Name:     "X",
		Password: "sufficiently-long",
		Role:     "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestUpdate_RoleChange(t *testing.T) {
	store := &mockUserStore{}
	store.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Role: domain.RoleUser}, nil)

	var captured map[string]interface{}
	store.On("Update", mock.Anything, "u1", mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(2).(map[string]interface{}) }).
		Return(nil)

	role := "content_reviewer"
	svc := NewService(store)
	_, err := svc.Update(context.Background(), "u1", &domain.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "content_reviewer", captured["role"])
}

func TestDisable_MissingUser(t *testing.T) {
	store := &mockUserStore{}
	store.On("Get", mock.Anything, "nope").Return(nil, domain.ErrNotFound)

	svc := NewService(store)
	err := svc.Disable(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	store.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
}
