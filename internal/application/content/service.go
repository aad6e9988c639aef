package content

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/pkg/id"
)

// Service runs the page-content moderation workflow: draft, submit for
// review, publish or reject. The public surface only ever sees published
// sections.
type Service interface {
	Create(ctx context.Context, in *domain.ContentInput, authorID string) (*domain.ContentItem, error)
	Get(ctx context.Context, contentID string) (*domain.ContentItem, error)
	ListPublished(ctx context.Context, page string) ([]domain.ContentItem, error)
	ListByPage(ctx context.Context, page string) ([]domain.ContentItem, error)
	ListAll(ctx context.Context) ([]domain.ContentItem, error)
	Update(ctx context.Context, contentID string, req *domain.UpdateContentRequest) error
	SubmitForReview(ctx context.Context, contentID string) error
	Review(ctx context.Context, contentID, reviewerID string, req *domain.ReviewContentRequest) error
	Delete(ctx context.Context, contentID string) error
}

type contentStore interface {
	Put(ctx context.Context, c *domain.ContentItem) error
	Get(ctx context.Context, contentID string) (*domain.ContentItem, error)
	ListByPage(ctx context.Context, page, status string) ([]domain.ContentItem, error)
	Scan(ctx context.Context) ([]domain.ContentItem, error)
	Update(ctx context.Context, contentID string, updates map[string]interface{}) error
	Delete(ctx context.Context, contentID string) error
}

type service struct {
	store contentStore
}

func NewService(store contentStore) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, in *domain.ContentInput, authorID string) (*domain.ContentItem, error) {
	now := time.Now().UTC()
	c := &domain.ContentItem{
		ContentID: id.New(),
		Page:      in.Page,
		Section:   in.Section,
		Title:     in.Title,
		Body:      in.Body,
		ImageURL:  in.ImageURL,
		SortOrder: in.SortOrder,
		Status:    domain.ContentDraft,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, contentID string) (*domain.ContentItem, error) {
	return s.store.Get(ctx, contentID)
}

func (s *service) ListPublished(ctx context.Context, page string) ([]domain.ContentItem, error) {
	items, err := s.store.ListByPage(ctx, page, domain.ContentPublished)
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].SortOrder < items[j].SortOrder })
	return items, nil
}

func (s *service) ListByPage(ctx context.Context, page string) ([]domain.ContentItem, error) {
	items, err := s.store.ListByPage(ctx, page, "")
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].SortOrder < items[j].SortOrder })
	return items, nil
}

func (s *service) ListAll(ctx context.Context) ([]domain.ContentItem, error) {
	return s.store.Scan(ctx)
}

// Update edits a section's fields. Published content must be rejected or
// re-drafted before editing, so the live site never changes without review.
func (s *service) Update(ctx context.Context, contentID string, req *domain.UpdateContentRequest) error {
	c, err := s.store.Get(ctx, contentID)
	if err != nil {
		return err
	}
	if c.Status == domain.ContentPublished || c.Status == domain.ContentPendingReview {
		return fmt.Errorf("content is %s and cannot be edited: %w", c.Status, domain.ErrConflict)
	}

	updates := map[string]interface{}{}
	if req.Section != nil {
		updates["section"] = *req.Section
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Body != nil {
		updates["body"] = *req.Body
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	if len(updates) == 0 {
		return nil
	}
	// Editing a rejected section returns it to draft.
	updates["status"] = domain.ContentDraft
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	return s.store.Update(ctx, contentID, updates)
}

func (s *service) SubmitForReview(ctx context.Context, contentID string) error {
	c, err := s.store.Get(ctx, contentID)
	if err != nil {
		return err
	}
	if c.Status != domain.ContentDraft && c.Status != domain.ContentRejected {
		return fmt.Errorf("content is %s and cannot be submitted: %w", c.Status, domain.ErrConflict)
	}
	return s.store.Update(ctx, contentID, map[string]interface{}{
		"status":     domain.ContentPendingReview,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *service) Review(ctx context.Context, contentID, reviewerID string, req *domain.ReviewContentRequest) error {
	c, err := s.store.Get(ctx, contentID)
	if err != nil {
		return err
	}
	if c.Status != domain.ContentPendingReview {
		return fmt.Errorf("content is %s, not pending review: %w", c.Status, domain.ErrConflict)
	}

	status := domain.ContentRejected
	if req.Approve {
		status = domain.ContentPublished
	}
	return s.store.Update(ctx, contentID, map[string]interface{}{
		"status":      status,
		"reviewer_id": reviewerID,
		"review_note": req.Note,
		"updated_at":  time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *service) Delete(ctx context.Context, contentID string) error {
	if _, err := s.store.Get(ctx, contentID); err != nil {
		return err
	}
	return s.store.Delete(ctx, contentID)
}
