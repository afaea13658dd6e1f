package models

import "time"

// Course represents an offered course. TeacherID is optional because a
// course may run without an assigned instructor.
type Course struct {
	ID        string    `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	Credits   int       `db:"credits" json:"credits"`
	Category  string    `db:"category" json:"category"`
	Capacity  int       `db:"capacity" json:"capacity"`
	TeacherID *string   `db:"teacher_id" json:"teacher_id,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
