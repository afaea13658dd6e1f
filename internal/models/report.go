package models

import "time"

// ReportType enumerates the fixed report shapes.
type ReportType string

const (
	ReportTypeEnrollments ReportType = "enrollments"
	ReportTypeGrades      ReportType = "grades"
	ReportTypeTeachers    ReportType = "teachers"
)

// ExportFormat enumerates supported export formats.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatJSON ExportFormat = "json"
	ExportFormatPDF  ExportFormat = "pdf"
)

// ReportFilter is the validated filter specification applied by the joined
// record fetchers. Every field is optional; the zero value matches
// everything.
type ReportFilter struct {
	StartDate      *time.Time
	EndDate        *time.Time
	Department     string
	GradeLevel     string
	CourseCategory string
	Semester       string
	TeacherID      string
}

// EnrollmentRow is the denormalized enrollment report row. Joined fields are
// pointers: an outer-joined side that is absent yields nil, never a dropped
// row.
type EnrollmentRow struct {
	EnrollmentID      string    `db:"enrollment_id" json:"enrollment_id"`
	Status            string    `db:"status" json:"status"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	StudentName       *string   `db:"student_name" json:"student_name,omitempty"`
	StudentDepartment *string   `db:"student_department" json:"student_department,omitempty"`
	GradeLevel        *string   `db:"grade_level" json:"grade_level,omitempty"`
	CourseCode        *string   `db:"course_code" json:"course_code,omitempty"`
	CourseName        *string   `db:"course_name" json:"course_name,omitempty"`
	CourseCategory    *string   `db:"course_category" json:"course_category,omitempty"`
	TeacherName       *string   `db:"teacher_name" json:"teacher_name,omitempty"`
	Score             *float64  `db:"score" json:"score,omitempty"`
	Letter            *string   `db:"letter" json:"letter,omitempty"`
}

// GradeRow is the denormalized grade report row.
type GradeRow struct {
	GradeID           string    `db:"grade_id" json:"grade_id"`
	Score             *float64  `db:"score" json:"score,omitempty"`
	Letter            *string   `db:"letter" json:"letter,omitempty"`
	GPA               float64   `db:"gpa" json:"gpa"`
	Semester          string    `db:"semester" json:"semester"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	StudentName       *string   `db:"student_name" json:"student_name,omitempty"`
	StudentDepartment *string   `db:"student_department" json:"student_department,omitempty"`
	GradeLevel        *string   `db:"grade_level" json:"grade_level,omitempty"`
	CourseCode        *string   `db:"course_code" json:"course_code,omitempty"`
	CourseName        *string   `db:"course_name" json:"course_name,omitempty"`
	CourseCategory    *string   `db:"course_category" json:"course_category,omitempty"`
	TeacherName       *string   `db:"teacher_name" json:"teacher_name,omitempty"`
}

// TeacherRow is one teacher/course/enrollment combination with the grade
// outer-joined. The workload view folds these in a single pass.
type TeacherRow struct {
	TeacherID         string    `db:"teacher_id" json:"teacher_id"`
	TeacherName       string    `db:"teacher_name" json:"teacher_name"`
	Department        *string   `db:"department" json:"department,omitempty"`
	Title             string    `db:"title" json:"title"`
	Workload          *float64  `db:"workload" json:"workload,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	CourseID          *string   `db:"course_id" json:"course_id,omitempty"`
	CourseName        *string   `db:"course_name" json:"course_name,omitempty"`
	StudentID         *string   `db:"student_id" json:"student_id,omitempty"`
	StudentDepartment *string   `db:"student_department" json:"student_department,omitempty"`
	Score             *float64  `db:"score" json:"score,omitempty"`
}
