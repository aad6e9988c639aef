package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/pkg/id"
)

const (
	defaultWindowDays = 30
	maxWindowDays     = 90
	topPagesLimit     = 10
)

// Service records page visits and builds the admin dashboard rollup.
type Service interface {
	Track(ctx context.Context, in *domain.VisitInput, referrer, userAgent string) error
	Summary(ctx context.Context, days int) (*domain.AnalyticsSummary, error)
}

type visitStore interface {
	Put(ctx context.Context, v *domain.Visit) error
	ListByDate(ctx context.Context, date string) ([]domain.Visit, error)
}

type counter interface {
	Count(ctx context.Context) (int, error)
}

type service struct {
	visits visitStore
	regs   counter
	apps   counter
	now    func() time.Time
}

func NewService(visits visitStore, regs, apps counter) Service {
	return &service{visits: visits, regs: regs, apps: apps, now: time.Now}
}

func (s *service) Track(ctx context.Context, in *domain.VisitInput, referrer, userAgent string) error {
	now := s.now().UTC()
	v := &domain.Visit{
		VisitID:   id.New(),
		Date:      now.Format("2006-01-02"),
		Page:      in.Page,
		Path:      in.Path,
		VisitorID: in.VisitorID,
		Referrer:  referrer,
		UserAgent: userAgent,
		CreatedAt: now,
	}
	return s.visits.Put(ctx, v)
}

// Summary aggregates the last N days of visits day by day over the date
// index. Days outside 1..90 fall back to the 30-day default.
func (s *service) Summary(ctx context.Context, days int) (*domain.AnalyticsSummary, error) {
	if days < 1 || days > maxWindowDays {
		days = defaultWindowDays
	}

	today := s.now().UTC()
	summary := &domain.AnalyticsSummary{
		Days:  days,
		Daily: make([]domain.DailyVisits, 0, days),
	}
	pageCounts := map[string]int{}
	visitors := map[string]struct{}{}

	for i := days - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		visits, err := s.visits.ListByDate(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("list visits for %s: %w", date, err)
		}

		summary.Daily = append(summary.Daily, domain.DailyVisits{Date: date, Count: len(visits)})
		summary.TotalVisits += len(visits)
		for _, v := range visits {
			pageCounts[v.Page]++
			if v.VisitorID != "" {
				visitors[v.VisitorID] = struct{}{}
			}
		}
	}
	summary.UniqueVisitors = len(visitors)
	summary.TopPages = topPages(pageCounts)

	// Totals come from other tables; a failure there degrades the dashboard
	// rather than failing it.
	if n, err := s.regs.Count(ctx); err == nil {
		summary.TotalRegistrations = n
	} else {
		slog.Warn("registration count unavailable", "error", err)
	}
	if n, err := s.apps.Count(ctx); err == nil {
		summary.TotalApplications = n
	} else {
		slog.Warn("application count unavailable", "error", err)
	}
	return summary, nil
}

func topPages(counts map[string]int) []domain.PageVisits {
	pages := make([]domain.PageVisits, 0, len(counts))
	for page, count := range counts {
		pages = append(pages, domain.PageVisits{Page: page, Count: count})
	}
	sort.Slice(pages, func(i, j int) bool {
		if pages[i].Count != pages[j].Count {
			return pages[i].Count > pages[j].Count
		}
		return pages[i].Page < pages[j].Page
	})
	if len(pages) > topPagesLimit {
		pages = pages[:topPagesLimit]
	}
	return pages
}
