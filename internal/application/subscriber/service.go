package subscriber

import (
	"context"
	"sort"
	"time"

	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/verification"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
)

// Service manages newsletter subscriptions. Subscribe is idempotent and
// re-activates previously unsubscribed addresses.
type Service interface {
	Subscribe(ctx context.Context, req *domain.SubscribeRequest) (*domain.Subscriber, error)
	Unsubscribe(ctx context.Context, emailAddr string) error
	List(ctx context.Context, activeOnly bool) ([]domain.Subscriber, error)
}

type subscriberStore interface {
	Put(ctx context.Context, s *domain.Subscriber) error
	Get(ctx context.Context, email string) (*domain.Subscriber, error)
	Scan(ctx context.Context) ([]domain.Subscriber, error)
	Update(ctx context.Context, email string, updates map[string]interface{}) error
}

type service struct {
	store subscriberStore
}

func NewService(store subscriberStore) Service {
	return &service{store: store}
}

func (s *service) Subscribe(ctx context.Context, req *domain.SubscribeRequest) (*domain.Subscriber, error) {
	emailAddr := verification.Normalize(req.Email)
	now := time.Now().UTC()

	if existing, err := s.store.Get(ctx, emailAddr); err == nil {
		if existing.Subscribed {
			return existing, nil
		}
		if err := s.store.Update(ctx, emailAddr, map[string]interface{}{
			"subscribed": true,
			"updated_at": now.Format(time.RFC3339),
		}); err != nil {
			return nil, err
		}
		existing.Subscribed = true
		existing.UpdatedAt = &now
		return existing, nil
	}

	sub := &domain.Subscriber{
		Email:        emailAddr,
		Name:         req.Name,
		Subscribed:   true,
		SubscribedAt: now,
	}
	if err := s.store.Put(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Unsubscribe flips the flag; the record stays so re-subscription keeps the
// original signup date. Unknown addresses report not found.
func (s *service) Unsubscribe(ctx context.Context, emailAddr string) error {
	emailAddr = verification.Normalize(emailAddr)
	if _, err := s.store.Get(ctx, emailAddr); err != nil {
		return err
	}
	return s.store.Update(ctx, emailAddr, map[string]interface{}{
		"subscribed": false,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]domain.Subscriber, error) {
	subs, err := s.store.Scan(ctx)
	if err != nil {
		return nil, err
	}
	if activeOnly {
		active := make([]domain.Subscriber, 0, len(subs))
		for _, sub := range subs {
			if sub.Subscribed {
				active = append(active, sub)
			}
		}
		subs = active
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].SubscribedAt.After(subs[j].SubscribedAt) })
	return subs, nil
}
