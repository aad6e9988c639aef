package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
)

type mockVisitStore struct{ mock.Mock }

func (m *mockVisitStore) Put(ctx context.Context, v *domain.Visit) error {
	return m.Called(ctx, v).Error(0)
}
func (m *mockVisitStore) ListByDate(ctx context.Context, date string) ([]domain.Visit, error) {
	args := m.Called(ctx, date)
	if vs, _ := args.Get(0).([]domain.Visit); vs != nil {
		return vs, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCounter struct{ mock.Mock }

func (m *mockCounter) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
}

func TestTrack_StampsDateFromClock(t *testing.T) {
	visits := &mockVisitStore{}
	var put *domain.Visit
	visits.On("Put", mock.Anything, mock.AnythingOfType("*domain.Visit")).
		Run(func(args mock.Arguments) { put = args.Get(1).(*domain.Visit) }).
		Return(nil)

	svc := &service{visits: visits, now: fixedNow}
	err := svc.Track(context.Background(), &domain.VisitInput{Page: "home", VisitorID: "v1"}, "https://ref", "agent")

	require.NoError(t, err)
	assert.Equal(t, "2026-08-28", put.Date)
	assert.Equal(t, "home", put.Page)
	assert.Equal(t, "https://ref", put.Referrer)
	assert.NotEmpty(t, put.VisitID)
}

func TestSummary_AggregatesWindow(t *testing.T) {
	visits := &mockVisitStore{}
	regs := &mockCounter{}
	apps := &mockCounter{}

	visits.On("ListByDate", mock.Anything, "2026-08-27").Return([]domain.Visit{
		{Page: "home", VisitorID: "a"},
		{Page: "home", VisitorID: "b"},
	}, nil)
	visits.On("ListByDate", mock.Anything, "2026-08-28").Return([]domain.Visit{
		{Page: "events", VisitorID: "a"},
	}, nil)
	regs.On("Count", mock.Anything).Return(42, nil)
	apps.On("Count", mock.Anything).Return(7, nil)

	svc := &service{visits: visits, regs: regs, apps: apps, now: fixedNow}
	sum, err := svc.Summary(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, 3, sum.TotalVisits)
	assert.Equal(t, 2, sum.UniqueVisitors)
	require.Len(t, sum.Daily, 2)
	assert.Equal(t, "2026-08-27", sum.Daily[0].Date)
	assert.Equal(t, 2, sum.Daily[0].Count)
	assert.Equal(t, "home", sum.TopPages[0].Page)
	assert.Equal(t, 42, sum.TotalRegistrations)
	assert.Equal(t, 7, sum.TotalApplications)
}

func TestSummary_OutOfRangeWindowDefaults(t *testing.T) {
	visits := &mockVisitStore{}
	regs := &mockCounter{}
	apps := &mockCounter{}
	visits.On("ListByDate", mock.Anything, mock.Anything).Return([]domain.Visit{}, nil)
	regs.On("Count", mock.Anything).Return(0, nil)
	apps.On("Count", mock.Anything).Return(0, nil)

	svc := &service{visits: visits, regs: regs, apps: apps, now: fixedNow}
	sum, err := svc.Summary(context.Background(), 365)
	require.NoError(t, err)
	assert.Equal(t, 30, sum.Days)
	assert.Len(t, sum.Daily, 30)
}

func TestSummary_CounterFailureDegrades(t *testing.T) {
	visits := &mockVisitStore{}
	regs := &mockCounter{}
	apps := &mockCounter{}
	visits.On("ListByDate", mock.Anything, mock.Anything).Return([]domain.Visit{}, nil)
	regs.On("Count", mock.Anything).Return(0, errors.New("throttled"))
	apps.On("Count", mock.Anything).Return(5, nil)

	svc := &service{visits: visits, regs: regs, apps: apps, now: fixedNow}
	sum, err := svc.Summary(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.TotalRegistrations)
	assert.Equal(t, 5, sum.TotalApplications)
}
