package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/akademix/records-api/internal/models"
)

// ReportRepository executes the per-report-type joined fetches. Every join
// against an optional entity is a LEFT JOIN: a missing right-hand side
// yields NULLs in the row, never a dropped row.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs the repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// EnrollmentRows returns denormalized enrollment rows, newest first with a
// stable total order.
func (r *ReportRepository) EnrollmentRows(ctx context.Context, filter models.ReportFilter) ([]models.EnrollmentRow, error) {
	var builder strings.Builder
	builder.WriteString(`SELECT e.id AS enrollment_id, e.status, e.created_at,
        s.full_name AS student_name, s.department AS student_department, s.grade_level,
        c.code AS course_code, c.name AS course_name, c.category AS course_category,
        t.full_name AS teacher_name,
        g.score, g.letter
        FROM enrollments e
        LEFT JOIN students s ON s.id = e.student_id
        LEFT JOIN courses c ON c.id = e.course_id
        LEFT JOIN teachers t ON t.id = c.teacher_id
        LEFT JOIN grades g ON g.student_id = e.student_id AND g.course_id = e.course_id
        WHERE 1=1`)
	var args []interface{}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		builder.WriteString(fmt.Sprintf(" AND e.created_at >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		builder.WriteString(fmt.Sprintf(" AND e.created_at <= $%d", len(args)))
	}
	appendDepartmentClause(&builder, &args, filter.Department)
	if filter.GradeLevel != "" {
		args = append(args, filter.GradeLevel)
		builder.WriteString(fmt.Sprintf(" AND s.grade_level = $%d", len(args)))
	}
	if filter.CourseCategory != "" {
		args = append(args, filter.CourseCategory)
		builder.WriteString(fmt.Sprintf(" AND c.category = $%d", len(args)))
	}
	if filter.Semester != "" {
		args = append(args, filter.Semester)
		builder.WriteString(fmt.Sprintf(" AND g.semester = $%d", len(args)))
	}
	if filter.TeacherID != "" {
		args = append(args, filter.TeacherID)
		builder.WriteString(fmt.Sprintf(" AND c.teacher_id = $%d", len(args)))
	}
	builder.WriteString(" ORDER BY e.created_at DESC, e.id DESC")

	var rows []models.EnrollmentRow
	if err := r.db.SelectContext(ctx, &rows, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("query enrollment rows: %w", err)
	}
	return rows, nil
}

// GradeRows returns denormalized grade rows, newest first.
func (r *ReportRepository) GradeRows(ctx context.Context, filter models.ReportFilter) ([]models.GradeRow, error) {
	var builder strings.Builder
	builder.WriteString(`SELECT g.id AS grade_id, g.score, g.letter, g.gpa, g.semester, g.created_at,
        s.full_name AS student_name, s.department AS student_department, s.grade_level,
        c.code AS course_code, c.name AS course_name, c.category AS course_category,
        t.full_name AS teacher_name
        FROM grades g
        LEFT JOIN students s ON s.id = g.student_id
        LEFT JOIN courses c ON c.id = g.course_id
        LEFT JOIN teachers t ON t.id = c.teacher_id
        WHERE 1=1`)
	var args []interface{}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		builder.WriteString(fmt.Sprintf(" AND g.created_at >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		builder.WriteString(fmt.Sprintf(" AND g.created_at <= $%d", len(args)))
	}
	appendDepartmentClause(&builder, &args, filter.Department)
	if filter.GradeLevel != "" {
		args = append(args, filter.GradeLevel)
		builder.WriteString(fmt.Sprintf(" AND s.grade_level = $%d", len(args)))
	}
	if filter.CourseCategory != "" {
		args = append(args, filter.CourseCategory)
		builder.WriteString(fmt.Sprintf(" AND c.category = $%d", len(args)))
	}
	if filter.Semester != "" {
		args = append(args, filter.Semester)
		builder.WriteString(fmt.Sprintf(" AND g.semester = $%d", len(args)))
	}
	if filter.TeacherID != "" {
		args = append(args, filter.TeacherID)
		builder.WriteString(fmt.Sprintf(" AND c.teacher_id = $%d", len(args)))
	}
	builder.WriteString(" ORDER BY g.created_at DESC, g.id DESC")

	var rows []models.GradeRow
	if err := r.db.SelectContext(ctx, &rows, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("query grade rows: %w", err)
	}
	return rows, nil
}

// TeacherRows returns one row per teacher/course/enrollment combination with
// grades outer-joined; teachers without courses or students still appear.
func (r *ReportRepository) TeacherRows(ctx context.Context, filter models.ReportFilter) ([]models.TeacherRow, error) {
	var builder strings.Builder
	builder.WriteString(`SELECT t.id AS teacher_id, t.full_name AS teacher_name, t.department, t.title, t.workload, t.created_at,
        c.id AS course_id, c.name AS course_name,
        e.student_id, s.department AS student_department,
        g.score
        FROM teachers t
        LEFT JOIN courses c ON c.teacher_id = t.id
        LEFT JOIN enrollments e ON e.course_id = c.id
        LEFT JOIN students s ON s.id = e.student_id
        LEFT JOIN grades g ON g.course_id = c.id AND g.student_id = e.student_id
        WHERE 1=1`)
	var args []interface{}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		builder.WriteString(fmt.Sprintf(" AND t.created_at >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		builder.WriteString(fmt.Sprintf(" AND t.created_at <= $%d", len(args)))
	}
	appendDepartmentClause(&builder, &args, filter.Department)
	if filter.GradeLevel != "" {
		args = append(args, filter.GradeLevel)
		builder.WriteString(fmt.Sprintf(" AND s.grade_level = $%d", len(args)))
	}
	if filter.CourseCategory != "" {
		args = append(args, filter.CourseCategory)
		builder.WriteString(fmt.Sprintf(" AND c.category = $%d", len(args)))
	}
	if filter.Semester != "" {
		args = append(args, filter.Semester)
		builder.WriteString(fmt.Sprintf(" AND g.semester = $%d", len(args)))
	}
	if filter.TeacherID != "" {
		args = append(args, filter.TeacherID)
		builder.WriteString(fmt.Sprintf(" AND t.id = $%d", len(args)))
	}
	builder.WriteString(" ORDER BY t.created_at DESC, t.id DESC, c.id, e.id")

	var rows []models.TeacherRow
	if err := r.db.SelectContext(ctx, &rows, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("query teacher rows: %w", err)
	}
	return rows, nil
}

// appendDepartmentClause disjoins the department filter across the student
// and teacher sides, since reports span both entities.
func appendDepartmentClause(builder *strings.Builder, args *[]interface{}, department string) {
	if department == "" {
		return
	}
	*args = append(*args, department)
	first := len(*args)
	*args = append(*args, department)
	builder.WriteString(fmt.Sprintf(" AND (s.department = $%d OR t.department = $%d)", first, len(*args)))
}
