package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
)

type mockContentStore struct{ mock.Mock }

func (m *mockContentStore) Put(ctx context.Context, c *domain.ContentItem) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockContentStore) Get(ctx context.Context, contentID string) (*domain.ContentItem, error) {
	args := m.Called(ctx, contentID)
	if c, _ := args.Get(0).(*domain.ContentItem); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockContentStore) ListByPage(ctx context.Context, page, status string) ([]domain.ContentItem, error) {
	args := m.Called(ctx, page, status)
	if cs, _ := args.Get(0).([]domain.ContentItem); cs != nil {
		return cs, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockContentStore) Scan(ctx context.Context) ([]domain.ContentItem, error) {
	args := m.Called(ctx)
	if cs, _ := args.Get(0).([]domain.ContentItem); cs != nil {
		return cs, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockContentStore) Update(ctx context.Context, contentID string, updates map[string]interface{}) error {
	return m.Called(ctx, contentID, updates).Error(0)
}
func (m *mockContentStore) Delete(ctx context.Context, contentID string) error {
	return m.Called(ctx, contentID).Error(0)
}

func item(status string) *domain.ContentItem {
	return &domain.ContentItem{ContentID: "c1", Page: "about", Section: "mission", Status: status}
}

func TestCreate_StartsAsDraft(t *testing.T) {
	store := &mockContentStore{}
	store.On("Put", mock.Anything, mock.AnythingOfType("*domain.ContentItem")).Return(nil)

	svc := NewService(store)
	c, err := svc.Create(context.Background(), &domain.ContentInput{Page: "about", Section: "mission"}, "user1")
	require.NoError(t, err)
	assert.Equal(t, domain.ContentDraft, c.Status)
	assert.Equal(t, "user1", c.AuthorID)
}

func TestUpdate_PublishedIsLocked(t *testing.T) {
	store := &mockContentStore{}
	store.On("Get", mock.Anything, "c1").Return(item(domain.ContentPublished), nil)

	title := "New"
	svc := NewService(store)
	err := svc.Update(context.Background(), "c1", &domain.UpdateContentRequest{Title: &title})
	assert.ErrorIs(t, err, domain.ErrConflict)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_RejectedReturnsToDraft(t *testing.T) {
	store := &mockContentStore{}
	store.On("Get", mock.Anything, "c1").Return(item(domain.ContentRejected), nil)

	var captured map[string]interface{}
	store.On("Update", mock.Anything, "c1", mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(2).(map[string]interface{}) }).
		Return(nil)

	body := "refreshed"
	svc := NewService(store)
	err := svc.Update(context.Background(), "c1", &domain.UpdateContentRequest{Body: &body})
	require.NoError(t, err)
	assert.Equal(t, domain.ContentDraft, captured["status"])
	assert.Equal(t, "refreshed", captured["body"])
}

func TestSubmitForReview_OnlyFromDraftOrRejected(t *testing.T) {
	store := &mockContentStore{}
	store.On("Get", mock.Anything, "c1").Return(item(domain.ContentPendingReview), nil)

	svc := NewService(store)
	err := svc.SubmitForReview(context.Background(), "c1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestReview_ApprovePublishes(t *testing.T) {
	store := &mockContentStore{}
	store.On("Get", mock.Anything, "c1").Return(item(domain.ContentPendingReview), nil)

	var captured map[string]interface{}
	store.On("Update", mock.Anything, "c1", mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(2).(map[string]interface{}) }).
		Return(nil)

	svc := NewService(store)
	err := svc.Review(context.Background(), "c1", "rev1", &domain.ReviewContentRequest{Approve: true, Note: "looks good"})
	require.NoError(t, err)
	assert.Equal(t, domain.ContentPublished, captured["status"])
	assert.Equal(t, "rev1", captured["reviewer_id"])
}

func TestReview_RejectRecordsNote(t *testing.T) {
	store := &mockContentStore{}
	store.On("Get", mock.Anything, "c1").Return(item(domain.ContentPendingReview), nil)

	var captured map[string]interface{}
	store.On("Update", mock.Anything, "c1", mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(2).(map[string]interface{}) }).
		Return(nil)

	svc := NewService(store)
	err := svc.Review(context.Background(), "c1", "rev1", &domain.ReviewContentRequest{Approve: false, Note: "typo in heading"})
	require.NoError(t, err)
	assert.Equal(t, domain.ContentRejected, captured["status"])
	assert.Equal(t, "typo in heading", captured["review_note"])
}

func TestReview_NotPending(t *testing.T) {
	store := &mockContentStore{}
	store.On("Get", mock.Anything, "c1").Return(item(domain.ContentDraft), nil)

	svc := NewService(store)
	err := svc.Review(context.Background(), "c1", "rev1", &domain.ReviewContentRequest{Approve: true})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestListPublished_SortsBySortOrder(t *testing.T) {
	store := &mockContentStore{}
	store.On("ListByPage", mock.Anything, "home", domain.ContentPublished).Return([]domain.ContentItem{
		{ContentID: "b", SortOrder: 2},
		{ContentID: "a", SortOrder: 1},
	}, nil)

	svc := NewService(store)
	items, err := svc.ListPublished(context.Background(), "home")
	require.NoError(t, err)
	assert.Equal(t, "a", items[0].ContentID)
	assert.Equal(t, "b", items[1].ContentID)
}
