package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/AskKenImani/school-backend/internal/models"
	appErrors "github.com/AskKenImani/school-backend/pkg/errors"
)

type counter interface {
	Count(ctx context.Context) (int, error)
}

type attendanceSummarizer interface {
	TodaySummary(ctx context.Context, now time.Time) (*models.AttendanceTodaySummary, error)
}

const (
	dashboardCacheKey    = "dash:summary"
	reportTotalsCacheKey = "dash:report-totals"
)

// DashboardService composes the headline counters shown on the admin
// dashboard and the reports overview.
type DashboardService struct {
	students   counter
	teachers   counter
	classes    counter
	results    counter
	attendance attendanceSummarizer
	cache      *CacheService
	cacheTTL   time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Students   counter
	Teachers   counter
	Classes    counter
	Results    counter
	Attendance attendanceSummarizer
	Cache      *CacheService
	CacheTTL   time.Duration
	Logger     *zap.Logger
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		students:   params.Students,
		teachers:   params.Teachers,
		classes:    params.Classes,
		results:    params.Results,
		attendance: params.Attendance,
		cache:      params.Cache,
		cacheTTL:   ttl,
		logger:     logger,
		now:        time.Now,
	}
}

// Summary returns the admin dashboard counters and indicates whether the
// payload came from cache.
func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, bool, error) {
	if s.cache != nil {
		var cached models.DashboardSummary
		hit, err := s.cache.Get(ctx, dashboardCacheKey, &cached)
		if err != nil {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		} else if hit {
			return &cached, true, nil
		}
	}

	summary, err := s.composeSummary(ctx)
	if err != nil {
		return nil, false, err
	}
	s.persistCache(ctx, dashboardCacheKey, summary)
	return summary, false, nil
}

// ReportTotals returns aggregate counters for the reports overview.
func (s *DashboardService) ReportTotals(ctx context.Context) (*models.ReportTotals, bool, error) {
	if s.cache != nil {
		var cached models.ReportTotals
		hit, err := s.cache.Get(ctx, reportTotalsCacheKey, &cached)
		if err != nil {
			s.logger.Warn("report totals cache read failed", zap.Error(err))
		} else if hit {
			return &cached, true, nil
		}
	}

	totals := &models.ReportTotals{}
	var err error
	if totals.TotalStudents, err = s.students.Count(ctx); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count students")
	}
	if totals.TotalTeachers, err = s.teachers.Count(ctx); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count teachers")
	}
	if totals.TotalResults, err = s.results.Count(ctx); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count results")
	}
	s.persistCache(ctx, reportTotalsCacheKey, totals)
	return totals, false, nil
}

// Invalidate drops cached dashboard payloads. Called after writes that
// change the counters.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, "dash:*"); err != nil {
		s.logger.Warn("dashboard cache invalidate failed", zap.Error(err))
	}
}

func (s *DashboardService) composeSummary(ctx context.Context) (*models.DashboardSummary, error) {
	summary := &models.DashboardSummary{}
	var err error
	if summary.TotalStudents, err = s.students.Count(ctx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count students")
	}
	if summary.TotalTeachers, err = s.teachers.Count(ctx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count teachers")
	}
	if summary.TotalClasses, err = s.classes.Count(ctx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count classes")
	}
	if s.attendance != nil {
		today, err := s.attendance.TodaySummary(ctx, s.now())
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to summarize attendance")
		}
		summary.AttendanceToday = today.Total
		summary.PresentToday = today.Present
		summary.AbsentToday = today.Absent
	}
	return summary, nil
}

func (s *DashboardService) persistCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}
