package event

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/pkg/id"
)

// Service manages the event catalog. Public callers see only open events;
// the admin surface has full CRUD.
type Service interface {
	Create(ctx context.Context, in *domain.EventInput) (*domain.Event, error)
	Get(ctx context.Context, eventID string) (*domain.Event, error)
	ListPublic(ctx context.Context) ([]domain.Event, error)
	ListAll(ctx context.Context) ([]domain.Event, error)
	Update(ctx context.Context, eventID string, req *domain.UpdateEventRequest) error
	Delete(ctx context.Context, eventID string) error
}

type eventStore interface {
	Put(ctx context.Context, e *domain.Event) error
	Get(ctx context.Context, eventID string) (*domain.Event, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Event, error)
	Scan(ctx context.Context) ([]domain.Event, error)
	Update(ctx context.Context, eventID string, updates map[string]interface{}) error
	Delete(ctx context.Context, eventID string) error
}

type service struct {
	store eventStore
}

func NewService(store eventStore) Service {
	return &service{store: store}
}

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, domain.ErrBadRequest)
	}
	return t, nil
}

func (s *service) Create(ctx context.Context, in *domain.EventInput) (*domain.Event, error) {
	start, err := parseDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(in.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date precedes start date: %w", domain.ErrBadRequest)
	}

	mode := in.Mode
	if mode == "" {
		mode = "offline"
	}

	now := time.Now().UTC()
	e := &domain.Event{
		EventID:         id.New(),
		Title:           in.Title,
		Description:     in.Description,
		StartDate:       start,
		EndDate:         end,
		Location:        in.Location,
		Mode:            mode,
		Status:          domain.EventUpcoming,
		MaxParticipants: in.MaxParticipants,
		ImageURL:        in.ImageURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Put(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Get(ctx context.Context, eventID string) (*domain.Event, error) {
	return s.store.Get(ctx, eventID)
}

// ListPublic returns upcoming and ongoing events, soonest first.
func (s *service) ListPublic(ctx context.Context) ([]domain.Event, error) {
	upcoming, err := s.store.ListByStatus(ctx, domain.EventUpcoming)
	if err != nil {
		return nil, err
	}
	ongoing, err := s.store.ListByStatus(ctx, domain.EventOngoing)
	if err != nil {
		return nil, err
	}
	events := append(ongoing, upcoming...)
	sort.Slice(events, func(i, j int) bool {
		return events[i].StartDate.Before(events[j].StartDate)
	})
	return events, nil
}

func (s *service) ListAll(ctx context.Context) ([]domain.Event, error) {
	events, err := s.store.Scan(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].StartDate.Before(events[j].StartDate)
	})
	return events, nil
}

func (s *service) Update(ctx context.Context, eventID string, req *domain.UpdateEventRequest) error {
	if _, err := s.store.Get(ctx, eventID); err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			return err
		}
		updates["start_date"] = start.Format(time.RFC3339)
	}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			return err
		}
		updates["end_date"] = end.Format(time.RFC3339)
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Mode != nil {
		updates["mode"] = *req.Mode
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.MaxParticipants != nil {
		updates["max_participants"] = *req.MaxParticipants
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	return s.store.Update(ctx, eventID, updates)
}

func (s *service) Delete(ctx context.Context, eventID string) error {
	if _, err := s.store.Get(ctx, eventID); err != nil {
		return err
	}
	return s.store.Delete(ctx, eventID)
}
