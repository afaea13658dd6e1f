package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/akademix/records-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var enrollmentColumns = []string{
	"enrollment_id", "status", "created_at",
	"student_name", "student_department", "grade_level",
	"course_code", "course_name", "course_category",
	"teacher_name", "score", "letter",
}

func TestEnrollmentRowsUnfiltered(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	rows := sqlmock.NewRows(enrollmentColumns).
		AddRow("e1", "approved", time.Now(), "Ada", "Science", "10", "MATH101", "Algebra", "core", "Grace", 91.5, "A").
		AddRow("e2", "pending", time.Now(), nil, nil, nil, nil, nil, nil, nil, nil, nil)
	mock.ExpectQuery(`(?s)SELECT e\.id AS enrollment_id.+FROM enrollments e.+LEFT JOIN students s.+WHERE 1=1 ORDER BY e\.created_at DESC, e\.id DESC`).
		WillReturnRows(rows)

	fetched, err := repo.EnrollmentRows(context.Background(), models.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, fetched, 2)
	require.Equal(t, "e1", fetched[0].EnrollmentID)
	// outer-joined sides come back nil, the row survives
	require.Nil(t, fetched[1].StudentName)
	require.Nil(t, fetched[1].Score)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRowsAppliesFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 23, 59, 59, 999999999, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("AND e.created_at >= $1 AND e.created_at <= $2 AND (s.department = $3 OR t.department = $4) AND s.grade_level = $5 AND c.category = $6 AND g.semester = $7 AND c.teacher_id = $8")).
		WithArgs(start, end, "Science", "Science", "10", "core", "2024-spring", "t1").
		WillReturnRows(sqlmock.NewRows(enrollmentColumns))

	_, err := repo.EnrollmentRows(context.Background(), models.ReportFilter{
		StartDate:      &start,
		EndDate:        &end,
		Department:     "Science",
		GradeLevel:     "10",
		CourseCategory: "core",
		Semester:       "2024-spring",
		TeacherID:      "t1",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRowsDepartmentSpansBothSides(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("AND (s.department = $1 OR t.department = $2)")).
		WithArgs("Arts", "Arts").
		WillReturnRows(sqlmock.NewRows([]string{"grade_id", "score", "letter", "gpa", "semester", "created_at"}))

	_, err := repo.GradeRows(context.Background(), models.ReportFilter{Department: "Arts"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRowsKeepsTeachersWithoutCourses(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	rows := sqlmock.NewRows([]string{
		"teacher_id", "teacher_name", "department", "title", "workload", "created_at",
		"course_id", "course_name", "student_id", "student_department", "score",
	}).AddRow("t1", "Ada", "Science", "Professor", 12.0, time.Now(), nil, nil, nil, nil, nil)

	mock.ExpectQuery(`(?s)FROM teachers t.+LEFT JOIN courses c ON c\.teacher_id = t\.id.+ORDER BY t\.created_at DESC, t\.id DESC, c\.id, e\.id`).
		WillReturnRows(rows)

	fetched, err := repo.TeacherRows(context.Background(), models.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, fetched, 1)
	require.Nil(t, fetched[0].CourseID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRowsFilterByTeacherID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("AND t.id = $1")).
		WithArgs("t9").
		WillReturnRows(sqlmock.NewRows([]string{"teacher_id", "teacher_name", "title", "created_at"}))

	_, err := repo.TeacherRows(context.Background(), models.ReportFilter{TeacherID: "t9"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
