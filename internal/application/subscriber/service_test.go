package subscriber

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
)

type mockSubscriberStore struct{ mock.Mock }

func (m *mockSubscriberStore) Put(ctx context.Context, s *domain.Subscriber) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockSubscriberStore) Get(ctx context.Context, email string) (*domain.Subscriber, error) {
	args := m.Called(ctx, email)
	if s, _ := args.Get(0).(*domain.Subscriber); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSubscriberStore) Scan(ctx context.Context) ([]domain.Subscriber, error) {
	args := m.Called(ctx)
	if ss, _ := args.Get(0).([]domain.Subscriber); ss != nil {
		return ss, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSubscriberStore) Update(ctx context.Context, email string, updates map[string]interface{}) error {
	return m.Called(ctx, email, updates).Error(0)
}

func TestSubscribe_NewAddress(t *testing.T) {
	store := &mockSubscriberStore{}
	store.On("Get", mock.Anything, "devi@example.com").Return(nil, domain.ErrNotFound)
	store.On("Put", mock.Anything, mock.AnythingOfType("*domain.Subscriber")).Return(nil)

	svc := NewService(store)
	sub, err := svc.Subscribe(context.Background(), &domain.SubscribeRequest{Email: " Devi@Example.com "})
	require.NoError(t, err)
	assert.Equal(t, "devi@example.com", sub.Email)
	assert.True(t, sub.Subscribed)
}

func TestSubscribe_AlreadyActiveIsIdempotent(t *testing.T) {
	store := &mockSubscriberStore{}
	store.On("Get", mock.Anything, "devi@example.com").
		Return(&domain.Subscriber{Email: "devi@example.com", Subscribed: true}, nil)

	svc := NewService(store)
	sub, err := svc.Subscribe(context.Background(), &domain.SubscribeRequest{Email: "devi@example.com"})
	require.NoError(t, err)
	assert.True(t, sub.Subscribed)
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubscribe_ReactivatesUnsubscribed(t *testing.T) {
	store := &mockSubscriberStore{}
	signup := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	store.On("Get", mock.Anything, "devi@example.com").
		Return(&domain.Subscriber{Email: "devi@example.com", Subscribed: false, SubscribedAt: signup}, nil)
	store.On("Update", mock.Anything, "devi@example.com", mock.Anything).Return(nil)

	svc := NewService(store)
	sub, err := svc.Subscribe(context.Background(), &domain.SubscribeRequest{Email: "devi@example.com"})
	require.NoError(t, err)
	assert.True(t, sub.Subscribed)
	assert.Equal(t, signup, sub.SubscribedAt)
}

func TestUnsubscribe_UnknownAddress(t *testing.T) {
	store := &mockSubscriberStore{}
	store.On("Get", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

	svc := NewService(store)
	err := svc.Unsubscribe(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_ActiveOnlyFilters(t *testing.T) {
	store := &mockSubscriberStore{}
	store.On("Scan", mock.Anything).Return([]domain.Subscriber{
		{Email: "a@example.com", Subscribed: true},
		{Email: "b@example.com", Subscribed: false},
	}, nil)

	svc := NewService(store)
	subs, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "a@example.com", subs[0].Email)
}
