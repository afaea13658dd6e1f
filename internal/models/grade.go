package models

import "time"

// GradeLetters enumerates the fixed letter buckets every distribution
// carries, whether or not any row landed in them.
var GradeLetters = []string{"A", "B", "C", "D", "F"}

// Grade represents one grading record for a student/course pair. A pair may
// accumulate several records across semesters (re-takes). Score and Letter
// are nullable; their absence must never break aggregation.
type Grade struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"student_id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	Score     *float64  `db:"score" json:"score,omitempty"`
	Letter    *string   `db:"letter" json:"letter,omitempty"`
	GPA       float64   `db:"gpa" json:"gpa"`
	Semester  string    `db:"semester" json:"semester"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
