package dto

import "github.com/akademix/records-api/internal/models"

// DashboardResponse is the composed dashboard read-model.
type DashboardResponse struct {
	Totals       models.EntityCounts `json:"totals"`
	NewThisMonth models.EntityCounts `json:"new_this_month"`
	AverageGPA   float64             `json:"avg_gpa"`
	ApprovalRate float64             `json:"approval_rate"`
	Trend        []TrendEntry        `json:"trend"`
}

// TrendEntry reports new records for one calendar month of the rolling
// window. Month is rendered as YYYY-MM.
type TrendEntry struct {
	Month       string `json:"month"`
	Students    int    `json:"students"`
	Teachers    int    `json:"teachers"`
	Courses     int    `json:"courses"`
	Enrollments int    `json:"enrollments"`
	Grades      int    `json:"grades"`
}
