package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/akademix/records-api/internal/models"
)

// DashboardRepository issues the fixed battery of counting and averaging
// queries behind the dashboard read-model.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs the repository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Totals returns lifetime counts for every core entity in one round trip.
func (r *DashboardRepository) Totals(ctx context.Context) (models.EntityCounts, error) {
	const query = `SELECT
        (SELECT COUNT(*) FROM students) AS students,
        (SELECT COUNT(*) FROM teachers) AS teachers,
        (SELECT COUNT(*) FROM courses) AS courses,
        (SELECT COUNT(*) FROM enrollments) AS enrollments,
        (SELECT COUNT(*) FROM grades) AS grades`
	var counts models.EntityCounts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return models.EntityCounts{}, fmt.Errorf("query entity totals: %w", err)
	}
	return counts, nil
}

// CountsBetween returns per-entity counts of records created within the
// inclusive [start, end] window.
func (r *DashboardRepository) CountsBetween(ctx context.Context, start, end time.Time) (models.EntityCounts, error) {
	const query = `SELECT
        (SELECT COUNT(*) FROM students WHERE created_at >= $1 AND created_at <= $2) AS students,
        (SELECT COUNT(*) FROM teachers WHERE created_at >= $1 AND created_at <= $2) AS teachers,
        (SELECT COUNT(*) FROM courses WHERE created_at >= $1 AND created_at <= $2) AS courses,
        (SELECT COUNT(*) FROM enrollments WHERE created_at >= $1 AND created_at <= $2) AS enrollments,
        (SELECT COUNT(*) FROM grades WHERE created_at >= $1 AND created_at <= $2) AS grades`
	var counts models.EntityCounts
	if err := r.db.GetContext(ctx, &counts, query, start, end); err != nil {
		return models.EntityCounts{}, fmt.Errorf("query windowed counts: %w", err)
	}
	return counts, nil
}

// AverageGPA returns the mean GPA across all grade records, 0 when none
// exist.
func (r *DashboardRepository) AverageGPA(ctx context.Context) (float64, error) {
	const query = `SELECT COALESCE(AVG(gpa), 0) FROM grades`
	var avg float64
	if err := r.db.GetContext(ctx, &avg, query); err != nil {
		return 0, fmt.Errorf("query average gpa: %w", err)
	}
	return avg, nil
}

// EnrollmentStatusCounts returns row counts grouped by enrollment status.
func (r *DashboardRepository) EnrollmentStatusCounts(ctx context.Context) ([]models.StatusCount, error) {
	const query = `SELECT status, COUNT(*) AS count FROM enrollments GROUP BY status`
	var counts []models.StatusCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("query enrollment status counts: %w", err)
	}
	return counts, nil
}
