package dto

import "github.com/akademix/records-api/internal/models"

// ReportFilterRequest is the untyped caller-supplied filter payload. Unknown
// keys are dropped by JSON binding rather than rejected; every recognized
// field is optional.
type ReportFilterRequest struct {
	StartDate      string `json:"start_date" form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate        string `json:"end_date" form:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Department     string `json:"department" form:"department"`
	GradeLevel     string `json:"grade_level" form:"grade_level"`
	CourseCategory string `json:"course_category" form:"course_category"`
	Semester       string `json:"semester" form:"semester"`
	TeacherID      string `json:"teacher_id" form:"teacher_id"`
}

// GroupStat is one group-by bucket (course or department). Statuses is
// populated for the enrollment report, Letters for the grade report.
type GroupStat struct {
	Key          string         `json:"key"`
	Count        int            `json:"count"`
	Statuses     map[string]int `json:"statuses,omitempty"`
	Letters      map[string]int `json:"letters,omitempty"`
	AverageScore float64        `json:"avg_score"`
}

// EnrollmentSummary is the enrollment report's global summary block.
type EnrollmentSummary struct {
	Total        int     `json:"total"`
	Pending      int     `json:"pending"`
	Approved     int     `json:"approved"`
	Rejected     int     `json:"rejected"`
	Unknown      int     `json:"unknown"`
	ApprovalRate float64 `json:"approval_rate"`
}

// EnrollmentReportResponse is the full enrollment report payload.
type EnrollmentReportResponse struct {
	Summary      EnrollmentSummary      `json:"summary"`
	Rows         []models.EnrollmentRow `json:"rows"`
	ByCourse     []GroupStat            `json:"by_course"`
	ByDepartment []GroupStat            `json:"by_department"`
}

// GradeSummary is the grade report's global summary block. Distribution
// always carries all five letter buckets so the schema is stable.
type GradeSummary struct {
	Total        int            `json:"total"`
	Scored       int            `json:"scored"`
	AverageScore float64        `json:"avg_score"`
	MinScore     float64        `json:"min_score"`
	MaxScore     float64        `json:"max_score"`
	Distribution map[string]int `json:"distribution"`
}

// GradeReportResponse is the full grade report payload.
type GradeReportResponse struct {
	Summary      GradeSummary      `json:"summary"`
	Rows         []models.GradeRow `json:"rows"`
	ByCourse     []GroupStat       `json:"by_course"`
	ByDepartment []GroupStat       `json:"by_department"`
}

// TeacherWorkload is the per-teacher derived view.
type TeacherWorkload struct {
	TeacherID          string   `json:"teacher_id"`
	Name               string   `json:"name"`
	Department         string   `json:"department"`
	Title              string   `json:"title"`
	Workload           *float64 `json:"workload,omitempty"`
	CourseCount        int      `json:"course_count"`
	StudentCount       int      `json:"student_count"`
	AverageGrade       float64  `json:"avg_grade"`
	StudentDepartments int      `json:"student_departments"`
}

// DepartmentRollup aggregates the workload view per department.
type DepartmentRollup struct {
	Department      string  `json:"department"`
	TeacherCount    int     `json:"teacher_count"`
	CourseCount     int     `json:"course_count"`
	StudentCount    int     `json:"student_count"`
	AverageWorkload float64 `json:"avg_workload"`
	AverageGrade    float64 `json:"avg_grade"`
}

// TeacherReportResponse is the full teacher report payload.
type TeacherReportResponse struct {
	Teachers    []TeacherWorkload  `json:"teachers"`
	Departments []DepartmentRollup `json:"departments"`
}
