package models

// EntityCounts carries one counter per core entity. Used for both lifetime
// totals and windowed (per-month, this-month) deltas.
type EntityCounts struct {
	Students    int `db:"students" json:"students"`
	Teachers    int `db:"teachers" json:"teachers"`
	Courses     int `db:"courses" json:"courses"`
	Enrollments int `db:"enrollments" json:"enrollments"`
	Grades      int `db:"grades" json:"grades"`
}

// StatusCount pairs an enrollment status with its row count.
type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}
