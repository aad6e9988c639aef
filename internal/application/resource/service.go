package resource

import (
	"context"
	"sort"
	"time"

	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/pkg/id"
)

// Service manages the meditation resource library.
type Service interface {
	Create(ctx context.Context, in *domain.ResourceInput) (*domain.Resource, error)
	Get(ctx context.Context, resourceID string) (*domain.Resource, error)
	ListPublished(ctx context.Context, resourceType string) ([]domain.Resource, error)
	ListAll(ctx context.Context) ([]domain.Resource, error)
	Update(ctx context.Context, resourceID string, req *domain.UpdateResourceRequest) error
	Delete(ctx context.Context, resourceID string) error
}

type resourceStore interface {
	Put(ctx context.Context, res *domain.Resource) error
	Get(ctx context.Context, resourceID string) (*domain.Resource, error)
	ListByType(ctx context.Context, resourceType string) ([]domain.Resource, error)
	Scan(ctx context.Context) ([]domain.Resource, error)
	Update(ctx context.Context, resourceID string, updates map[string]interface{}) error
	Delete(ctx context.Context, resourceID string) error
}

type service struct {
	store resourceStore
}

func NewService(store resourceStore) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, in *domain.ResourceInput) (*domain.Resource, error) {
	published := true
	if in.Published != nil {
		published = *in.Published
	}

	now := time.Now().UTC()
	res := &domain.Resource{
		ResourceID:  id.New(),
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Category:    in.Category,
		FileURL:     in.FileURL,
		Published:   published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Put(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) Get(ctx context.Context, resourceID string) (*domain.Resource, error) {
	return s.store.Get(ctx, resourceID)
}

// ListPublished returns published resources, optionally filtered by type,
// newest first.
func (s *service) ListPublished(ctx context.Context, resourceType string) ([]domain.Resource, error) {
	var (
		all []domain.Resource
		err error
	)
	if resourceType != "" {
		all, err = s.store.ListByType(ctx, resourceType)
	} else {
		all, err = s.store.Scan(ctx)
	}
	if err != nil {
		return nil, err
	}

	published := make([]domain.Resource, 0, len(all))
	for _, r := range all {
		if r.Published {
			published = append(published, r)
		}
	}
	sort.Slice(published, func(i, j int) bool {
		return published[i].CreatedAt.After(published[j].CreatedAt)
	})
	return published, nil
}

func (s *service) ListAll(ctx context.Context) ([]domain.Resource, error) {
	return s.store.Scan(ctx)
}

func (s *service) Update(ctx context.Context, resourceID string, req *domain.UpdateResourceRequest) error {
	if _, err := s.store.Get(ctx, resourceID); err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.FileURL != nil {
		updates["file_url"] = *req.FileURL
	}
	if req.Published != nil {
		updates["published"] = *req.Published
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	return s.store.Update(ctx, resourceID, updates)
}

func (s *service) Delete(ctx context.Context, resourceID string) error {
	if _, err := s.store.Get(ctx, resourceID); err != nil {
		return err
	}
	return s.store.Delete(ctx, resourceID)
}
