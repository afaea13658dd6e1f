package dto

// ExportRequest captures POST /export payloads.
type ExportRequest struct {
	ReportType string              `json:"report_type" validate:"required"`
	Format     string              `json:"format" validate:"required"`
	Filters    ReportFilterRequest `json:"filters"`
}
