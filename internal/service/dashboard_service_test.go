package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AskKenImani/school-backend/internal/models"
	appErrors "github.com/AskKenImani/school-backend/pkg/errors"
)

type staticCounter int

func (c staticCounter) Count(context.Context) (int, error) { return int(c), nil }

type failingCounter struct{}

func (failingCounter) Count(context.Context) (int, error) {
	return 0, fmt.Errorf("db unavailable")
}

type stubAttendanceSummary struct {
	summary models.AttendanceTodaySummary
}

func (s *stubAttendanceSummary) TodaySummary(ctx context.Context, now time.Time) (*models.AttendanceTodaySummary, error) {
	copied := s.summary
	return &copied, nil
}

type memoryCacheRepo struct {
	entries map[string][]byte
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if m.entries == nil {
		m.entries = map[string][]byte{}
	}
	m.entries[key] = raw
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.entries = map[string][]byte{}
	return nil
}

func TestDashboardServiceSummary(t *testing.T) {
	svc := NewDashboardService(DashboardServiceParams{
		Students:   staticCounter(120),
		Teachers:   staticCounter(8),
		Classes:    staticCounter(6),
		Results:    staticCounter(540),
		Attendance: &stubAttendanceSummary{summary: models.AttendanceTodaySummary{Total: 100, Present: 95, Absent: 5}},
	})

	summary, cached, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 120, summary.TotalStudents)
	assert.Equal(t, 8, summary.TotalTeachers)
	assert.Equal(t, 6, summary.TotalClasses)
	assert.Equal(t, 95, summary.PresentToday)
	assert.Equal(t, 5, summary.AbsentToday)
}

func TestDashboardServiceSummaryUsesCache(t *testing.T) {
	repo := &memoryCacheRepo{}
	cacheSvc := NewCacheService(repo, nil, time.Minute, nil, true)
	svc := NewDashboardService(DashboardServiceParams{
		Students:   staticCounter(120),
		Teachers:   staticCounter(8),
		Classes:    staticCounter(6),
		Results:    staticCounter(540),
		Attendance: &stubAttendanceSummary{},
		Cache:      cacheSvc,
	})

	_, cached, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)

	summary, cached, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, 120, summary.TotalStudents)

	svc.Invalidate(context.Background())
	_, cached, err = svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
}

func TestDashboardServiceSummaryCounterFailure(t *testing.T) {
	svc := NewDashboardService(DashboardServiceParams{
		Students:   failingCounter{},
		Teachers:   staticCounter(8),
		Classes:    staticCounter(6),
		Results:    staticCounter(540),
		Attendance: &stubAttendanceSummary{},
	})

	_, _, err := svc.Summary(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestDashboardServiceReportTotals(t *testing.T) {
	svc := NewDashboardService(DashboardServiceParams{
		Students: staticCounter(120),
		Teachers: staticCounter(8),
		Classes:  staticCounter(6),
		Results:  staticCounter(540),
	})

	totals, cached, err := svc.ReportTotals(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 120, totals.TotalStudents)
	assert.Equal(t, 8, totals.TotalTeachers)
	assert.Equal(t, 540, totals.TotalResults)
}
