package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/akademix/records-api/internal/dto"
	"github.com/akademix/records-api/internal/models"
	appErrors "github.com/akademix/records-api/pkg/errors"
)

const trendMonths = 6

type dashboardStatsRepository interface {
	Totals(ctx context.Context) (models.EntityCounts, error)
	CountsBetween(ctx context.Context, start, end time.Time) (models.EntityCounts, error)
	AverageGPA(ctx context.Context) (float64, error)
	EnrollmentStatusCounts(ctx context.Context) ([]models.StatusCount, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL time.Duration
}

// DashboardService composes the dashboard read-model from a fixed battery of
// independent queries. Any single sub-query failure aborts the whole
// composition; a partial dashboard is worse than an explicit error.
type DashboardService struct {
	repo    dashboardStatsRepository
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
	cfg     DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(repo dashboardStatsRepository, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cfg DashboardServiceConfig) *DashboardService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		repo:    repo,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
		cfg:     cfg,
	}
}

// Overview returns the composed dashboard and indicates cache utilisation.
func (s *DashboardService) Overview(ctx context.Context) (*dto.DashboardResponse, bool, error) {
	const cacheKey = "dash:overview"
	if s.cache != nil {
		var cached dto.DashboardResponse
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
		if hit {
			return &cached, true, nil
		}
	}

	summary, err := s.compose(ctx)
	if err != nil {
		return nil, false, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, summary, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return summary, false, nil
}

func (s *DashboardService) compose(ctx context.Context) (*dto.DashboardResponse, error) {
	totals, err := s.timedTotals(ctx)
	if err != nil {
		return nil, s.storeError("dashboard totals failed", err)
	}

	now := s.now().UTC()
	monthStart, monthEnd := monthBounds(now, 0)
	thisMonth, err := s.repo.CountsBetween(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, s.storeError("dashboard month deltas failed", err)
	}

	avgGPA, err := s.repo.AverageGPA(ctx)
	if err != nil {
		return nil, s.storeError("dashboard gpa average failed", err)
	}

	statusCounts, err := s.repo.EnrollmentStatusCounts(ctx)
	if err != nil {
		return nil, s.storeError("dashboard status counts failed", err)
	}

	trend, err := s.trend(ctx, now)
	if err != nil {
		return nil, s.storeError("dashboard trend failed", err)
	}

	return &dto.DashboardResponse{
		Totals:       totals,
		NewThisMonth: thisMonth,
		AverageGPA:   round2(avgGPA),
		ApprovalRate: approvalRate(statusCounts),
		Trend:        trend,
	}, nil
}

// trend counts new records per calendar month over the rolling window,
// current (partial) month included. Months are computed newest-first and
// reversed so the presentation order is chronologically ascending.
func (s *DashboardService) trend(ctx context.Context, now time.Time) ([]dto.TrendEntry, error) {
	entries := make([]dto.TrendEntry, 0, trendMonths)
	for offset := 0; offset < trendMonths; offset++ {
		start, end := monthBounds(now, offset)
		counts, err := s.repo.CountsBetween(ctx, start, end)
		if err != nil {
			return nil, err
		}
		entries = append(entries, dto.TrendEntry{
			Month:       start.Format("2006-01"),
			Students:    counts.Students,
			Teachers:    counts.Teachers,
			Courses:     counts.Courses,
			Enrollments: counts.Enrollments,
			Grades:      counts.Grades,
		})
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

func (s *DashboardService) timedTotals(ctx context.Context) (models.EntityCounts, error) {
	start := time.Now()
	totals, err := s.repo.Totals(ctx)
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("dashboard_totals", time.Since(start))
	}
	return totals, err
}

func (s *DashboardService) storeError(msg string, err error) error {
	s.logger.Error(msg, zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compose dashboard")
}

// monthBounds returns the inclusive boundaries of the calendar month that
// lies offset months before the one containing t. The end boundary is the
// final instant of that month's real last day, never a fixed 30-day offset.
func monthBounds(t time.Time, offset int) (time.Time, time.Time) {
	firstOfCurrent := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := firstOfCurrent.AddDate(0, -offset, 0)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

func approvalRate(counts []models.StatusCount) float64 {
	total := 0
	approved := 0
	for _, count := range counts {
		total += count.Count
		if models.EnrollmentStatus(count.Status) == models.EnrollmentStatusApproved {
			approved += count.Count
		}
	}
	if total == 0 {
		return 0
	}
	return round2(float64(approved) / float64(total))
}
