package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/akademix/records-api/internal/dto"
	"github.com/akademix/records-api/internal/models"
	appErrors "github.com/akademix/records-api/pkg/errors"
	"github.com/akademix/records-api/pkg/export"
)

// Timestamp renderings per target format. Spreadsheet consumers get the
// ISO-like space-separated form, JSON consumers get RFC3339.
const (
	csvTimeLayout  = "2006-01-02 15:04:05"
	jsonTimeLayout = time.RFC3339
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type jsonRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult is one rendered export: the byte stream plus the metadata the
// transport needs to serve it as an attachment.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportServiceConfig bounds synchronous export generation. Zero values
// disable the corresponding bound.
type ExportServiceConfig struct {
	MaxRows int
	Timeout time.Duration
}

// ExportService renders report row sequences into downloadable files. It
// holds no state beyond its collaborators; every export buffer is request
// scoped.
type ExportService struct {
	reports *ReportService
	csv     csvRenderer
	json    jsonRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
	now     func() time.Time
	cfg     ExportServiceConfig
}

// NewExportService constructs an ExportService.
func NewExportService(reports *ReportService, logger *zap.Logger, cfg ExportServiceConfig) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		reports: reports,
		csv:     export.NewCSVExporter(),
		json:    export.NewJSONExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
		now:     time.Now,
		cfg:     cfg,
	}
}

// Export validates the request, fetches the rows for the requested report
// type, and renders them in the requested format. Validation failures never
// touch the store.
func (s *ExportService) Export(ctx context.Context, req dto.ExportRequest) (*ExportResult, error) {
	reportType := models.ReportType(req.ReportType)
	if !isValidReportType(reportType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report type %q", req.ReportType))
	}
	format := models.ExportFormat(req.Format)
	if !isValidFormat(format) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", req.Format))
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	layout := jsonTimeLayout
	if format != models.ExportFormatJSON {
		layout = csvTimeLayout
	}
	dataset, title, err := s.buildDataset(ctx, reportType, req.Filters, layout)
	if err != nil {
		return nil, err
	}
	if s.cfg.MaxRows > 0 && len(dataset.Rows) > s.cfg.MaxRows {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("export exceeds the %d row limit, narrow the filters", s.cfg.MaxRows))
	}

	var payload []byte
	var contentType string
	switch format {
	case models.ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
		contentType = "text/csv; charset=utf-8"
	case models.ExportFormatJSON:
		payload, err = s.json.Render(dataset)
		contentType = "application/json"
	case models.ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
		contentType = "application/pdf"
	}
	if err != nil {
		s.logger.Error("export render failed", zap.String("type", req.ReportType), zap.String("format", req.Format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportResult{
		Filename:    s.buildFilename(reportType, format),
		ContentType: contentType,
		Data:        payload,
	}, nil
}

// buildFilename yields the deterministic stem: report type plus UTC
// timestamp.
func (s *ExportService) buildFilename(reportType models.ReportType, format models.ExportFormat) string {
	timestamp := s.now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s_report_%s.%s", reportType, timestamp, format)
}

func (s *ExportService) buildDataset(ctx context.Context, reportType models.ReportType, filters dto.ReportFilterRequest, timeLayout string) (export.Dataset, string, error) {
	switch reportType {
	case models.ReportTypeEnrollments:
		return s.buildEnrollmentDataset(ctx, filters, timeLayout)
	case models.ReportTypeGrades:
		return s.buildGradeDataset(ctx, filters, timeLayout)
	default:
		return s.buildTeacherDataset(ctx, filters)
	}
}

func (s *ExportService) buildEnrollmentDataset(ctx context.Context, filters dto.ReportFilterRequest, timeLayout string) (export.Dataset, string, error) {
	filter, err := s.reports.ParseFilter(filters)
	if err != nil {
		return export.Dataset{}, "", err
	}
	rows, err := s.reports.rows.EnrollmentRows(ctx, filter)
	if err != nil {
		s.logger.Error("export enrollment fetch failed", zap.Error(err))
		return export.Dataset{}, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build enrollment export")
	}
	dataRows := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		dataRows = append(dataRows, map[string]string{
			"Enrollment ID": row.EnrollmentID,
			"Student":       deref(row.StudentName),
			"Department":    deref(row.StudentDepartment),
			"Grade Level":   deref(row.GradeLevel),
			"Course Code":   deref(row.CourseCode),
			"Course":        deref(row.CourseName),
			"Category":      deref(row.CourseCategory),
			"Teacher":       deref(row.TeacherName),
			"Status":        row.Status,
			"Score":         formatScore(row.Score),
			"Letter":        deref(row.Letter),
			"Created At":    row.CreatedAt.UTC().Format(timeLayout),
		})
	}
	dataset := export.Dataset{
		Headers: []string{"Enrollment ID", "Student", "Department", "Grade Level", "Course Code", "Course", "Category", "Teacher", "Status", "Score", "Letter", "Created At"},
		Rows:    dataRows,
	}
	return dataset, "Enrollment Report", nil
}

func (s *ExportService) buildGradeDataset(ctx context.Context, filters dto.ReportFilterRequest, timeLayout string) (export.Dataset, string, error) {
	filter, err := s.reports.ParseFilter(filters)
	if err != nil {
		return export.Dataset{}, "", err
	}
	rows, err := s.reports.rows.GradeRows(ctx, filter)
	if err != nil {
		s.logger.Error("export grade fetch failed", zap.Error(err))
		return export.Dataset{}, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build grade export")
	}
	dataRows := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		dataRows = append(dataRows, map[string]string{
			"Grade ID":   row.GradeID,
			"Student":    deref(row.StudentName),
			"Department": deref(row.StudentDepartment),
			"Course":     deref(row.CourseName),
			"Category":   deref(row.CourseCategory),
			"Teacher":    deref(row.TeacherName),
			"Semester":   row.Semester,
			"Score":      formatScore(row.Score),
			"Letter":     deref(row.Letter),
			"GPA":        fmt.Sprintf("%.2f", row.GPA),
			"Created At": row.CreatedAt.UTC().Format(timeLayout),
		})
	}
	dataset := export.Dataset{
		Headers: []string{"Grade ID", "Student", "Department", "Course", "Category", "Teacher", "Semester", "Score", "Letter", "GPA", "Created At"},
		Rows:    dataRows,
	}
	return dataset, "Grade Report", nil
}

func (s *ExportService) buildTeacherDataset(ctx context.Context, filters dto.ReportFilterRequest) (export.Dataset, string, error) {
	report, err := s.reports.TeacherReport(ctx, filters)
	if err != nil {
		return export.Dataset{}, "", err
	}
	dataRows := make([]map[string]string, 0, len(report.Teachers))
	for _, teacher := range report.Teachers {
		dataRows = append(dataRows, map[string]string{
			"Teacher ID":          teacher.TeacherID,
			"Name":                teacher.Name,
			"Department":          teacher.Department,
			"Title":               teacher.Title,
			"Workload":            formatScore(teacher.Workload),
			"Courses":             fmt.Sprintf("%d", teacher.CourseCount),
			"Students":            fmt.Sprintf("%d", teacher.StudentCount),
			"Average Grade":       fmt.Sprintf("%.2f", teacher.AverageGrade),
			"Student Departments": fmt.Sprintf("%d", teacher.StudentDepartments),
		})
	}
	dataset := export.Dataset{
		Headers: []string{"Teacher ID", "Name", "Department", "Title", "Workload", "Courses", "Students", "Average Grade", "Student Departments"},
		Rows:    dataRows,
	}
	return dataset, "Teacher Workload Report", nil
}

func isValidReportType(t models.ReportType) bool {
	switch t {
	case models.ReportTypeEnrollments, models.ReportTypeGrades, models.ReportTypeTeachers:
		return true
	default:
		return false
	}
}

func isValidFormat(f models.ExportFormat) bool {
	switch f {
	case models.ExportFormatCSV, models.ExportFormatJSON, models.ExportFormatPDF:
		return true
	default:
		return false
	}
}

func formatScore(value *float64) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *value)
}
