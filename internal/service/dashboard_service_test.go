package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akademix/records-api/internal/models"
	appErrors "github.com/akademix/records-api/pkg/errors"
)

type stubCacheRepo struct {
	entries map[string][]byte
	sets    int
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := s.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if s.entries == nil {
		s.entries = make(map[string][]byte)
	}
	s.entries[key] = raw
	s.sets++
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(context.Context, string) error {
	s.entries = nil
	return nil
}

type fakeDashboardRepo struct {
	totals       models.EntityCounts
	windows      [][2]time.Time
	perWindow    map[string]models.EntityCounts
	avgGPA       float64
	statusCounts []models.StatusCount

	totalsErr error
	windowErr error
	gpaErr    error
	statusErr error
}

func (f *fakeDashboardRepo) Totals(context.Context) (models.EntityCounts, error) {
	return f.totals, f.totalsErr
}

func (f *fakeDashboardRepo) CountsBetween(_ context.Context, start, end time.Time) (models.EntityCounts, error) {
	if f.windowErr != nil {
		return models.EntityCounts{}, f.windowErr
	}
	f.windows = append(f.windows, [2]time.Time{start, end})
	if counts, ok := f.perWindow[start.Format("2006-01")]; ok {
		return counts, nil
	}
	return models.EntityCounts{}, nil
}

func (f *fakeDashboardRepo) AverageGPA(context.Context) (float64, error) {
	return f.avgGPA, f.gpaErr
}

func (f *fakeDashboardRepo) EnrollmentStatusCounts(context.Context) ([]models.StatusCount, error) {
	return f.statusCounts, f.statusErr
}

func newTestDashboardService(repo *fakeDashboardRepo, cacheRepo *stubCacheRepo) *DashboardService {
	var cacheSvc *CacheService
	if cacheRepo != nil {
		cacheSvc = NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	}
	svc := NewDashboardService(repo, cacheSvc, nil, nil, DashboardServiceConfig{CacheTTL: time.Minute})
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC) }
	return svc
}

func TestDashboardOverview_ComposesSummary(t *testing.T) {
	repo := &fakeDashboardRepo{
		totals: models.EntityCounts{Students: 120, Teachers: 14, Courses: 32, Enrollments: 300, Grades: 250},
		perWindow: map[string]models.EntityCounts{
			"2024-03": {Students: 5, Enrollments: 12},
			"2024-02": {Students: 3},
			"2023-10": {Teachers: 1},
		},
		avgGPA: 3.14159,
		statusCounts: []models.StatusCount{
			{Status: "approved", Count: 3},
			{Status: "pending", Count: 2},
			{Status: "withdrawn", Count: 1},
		},
	}

	svc := newTestDashboardService(repo, nil)
	summary, cacheHit, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)

	assert.Equal(t, 120, summary.Totals.Students)
	assert.Equal(t, 5, summary.NewThisMonth.Students)
	assert.Equal(t, 3.14, summary.AverageGPA)
	assert.Equal(t, 0.5, summary.ApprovalRate)

	require.Len(t, summary.Trend, trendMonths)
	assert.Equal(t, "2023-10", summary.Trend[0].Month)
	assert.Equal(t, "2024-03", summary.Trend[5].Month)
	assert.Equal(t, 1, summary.Trend[0].Teachers)
	assert.Equal(t, 12, summary.Trend[5].Enrollments)
}

func TestDashboardOverview_MonthBoundariesAreCalendarMonths(t *testing.T) {
	repo := &fakeDashboardRepo{}
	svc := newTestDashboardService(repo, nil)

	_, _, err := svc.Overview(context.Background())
	require.NoError(t, err)

	// one this-month window plus six trend windows
	require.Len(t, repo.windows, 1+trendMonths)

	thisMonth := repo.windows[0]
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), thisMonth[0])
	assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, 999999999, time.UTC), thisMonth[1])

	// trend windows walk backwards; February keeps its leap-year length
	february := repo.windows[2]
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), february[0])
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999999999, time.UTC), february[1])

	oldest := repo.windows[trendMonths]
	assert.Equal(t, time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC), oldest[0])
	assert.Equal(t, time.Date(2023, 10, 31, 23, 59, 59, 999999999, time.UTC), oldest[1])
}

func TestDashboardOverview_FailsFastOnSubQueryError(t *testing.T) {
	repo := &fakeDashboardRepo{gpaErr: errors.New("relation missing")}
	svc := newTestDashboardService(repo, nil)

	_, _, err := svc.Overview(context.Background())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErr.Code)
}

func TestDashboardOverview_ServesFromCache(t *testing.T) {
	repo := &fakeDashboardRepo{
		totals: models.EntityCounts{Students: 7},
	}
	cacheRepo := &stubCacheRepo{}
	svc := newTestDashboardService(repo, cacheRepo)

	first, cacheHit, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Equal(t, 1, cacheRepo.sets)

	second, cacheHit, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.True(t, cacheHit)
	assert.Equal(t, first.Totals, second.Totals)
	assert.Equal(t, 1, cacheRepo.sets)
}

func TestDashboardZeroEnrollments_ApprovalRateZero(t *testing.T) {
	svc := newTestDashboardService(&fakeDashboardRepo{}, nil)

	summary, _, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.ApprovalRate)
}
