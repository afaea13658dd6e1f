package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/akademix/records-api/internal/dto"
	"github.com/akademix/records-api/internal/models"
	appErrors "github.com/akademix/records-api/pkg/errors"
)

const filterDateLayout = "2006-01-02"

type reportRowFetcher interface {
	EnrollmentRows(ctx context.Context, filter models.ReportFilter) ([]models.EnrollmentRow, error)
	GradeRows(ctx context.Context, filter models.ReportFilter) ([]models.GradeRow, error)
	TeacherRows(ctx context.Context, filter models.ReportFilter) ([]models.TeacherRow, error)
}

// ReportService validates filter payloads, runs the joined fetch for the
// requested report type, and aggregates the result.
type ReportService struct {
	rows      reportRowFetcher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReportService constructs the report service.
func NewReportService(rows reportRowFetcher, validate *validator.Validate, logger *zap.Logger) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{rows: rows, validator: validate, logger: logger}
}

// ParseFilter turns the raw request payload into a validated filter. Date
// bounds are inclusive day boundaries; a start after the end is accepted and
// simply matches nothing.
func (s *ReportService) ParseFilter(req dto.ReportFilterRequest) (models.ReportFilter, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.ReportFilter{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid filter: dates must be YYYY-MM-DD")
	}
	filter := models.ReportFilter{
		Department:     req.Department,
		GradeLevel:     req.GradeLevel,
		CourseCategory: req.CourseCategory,
		Semester:       req.Semester,
		TeacherID:      req.TeacherID,
	}
	if req.StartDate != "" {
		start, err := time.Parse(filterDateLayout, req.StartDate)
		if err != nil {
			return models.ReportFilter{}, appErrors.Clone(appErrors.ErrValidation, "invalid start_date, expected YYYY-MM-DD")
		}
		filter.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse(filterDateLayout, req.EndDate)
		if err != nil {
			return models.ReportFilter{}, appErrors.Clone(appErrors.ErrValidation, "invalid end_date, expected YYYY-MM-DD")
		}
		// inclusive upper bound covers the whole end day
		end = end.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}
	return filter, nil
}

// EnrollmentReport runs the enrollment fetch and aggregation.
func (s *ReportService) EnrollmentReport(ctx context.Context, req dto.ReportFilterRequest) (*dto.EnrollmentReportResponse, error) {
	filter, err := s.ParseFilter(req)
	if err != nil {
		return nil, err
	}
	rows, err := s.rows.EnrollmentRows(ctx, filter)
	if err != nil {
		s.logger.Error("enrollment report fetch failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build enrollment report")
	}
	summary, byCourse, byDepartment := AggregateEnrollments(rows)
	return &dto.EnrollmentReportResponse{
		Summary:      summary,
		Rows:         rows,
		ByCourse:     byCourse,
		ByDepartment: byDepartment,
	}, nil
}

// GradeReport runs the grade fetch and aggregation.
func (s *ReportService) GradeReport(ctx context.Context, req dto.ReportFilterRequest) (*dto.GradeReportResponse, error) {
	filter, err := s.ParseFilter(req)
	if err != nil {
		return nil, err
	}
	rows, err := s.rows.GradeRows(ctx, filter)
	if err != nil {
		s.logger.Error("grade report fetch failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build grade report")
	}
	summary, byCourse, byDepartment := AggregateGrades(rows)
	return &dto.GradeReportResponse{
		Summary:      summary,
		Rows:         rows,
		ByCourse:     byCourse,
		ByDepartment: byDepartment,
	}, nil
}

// TeacherReport runs the teacher fetch and builds the workload view.
func (s *ReportService) TeacherReport(ctx context.Context, req dto.ReportFilterRequest) (*dto.TeacherReportResponse, error) {
	filter, err := s.ParseFilter(req)
	if err != nil {
		return nil, err
	}
	rows, err := s.rows.TeacherRows(ctx, filter)
	if err != nil {
		s.logger.Error("teacher report fetch failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build teacher report")
	}
	teachers, departments := AggregateTeachers(rows)
	return &dto.TeacherReportResponse{Teachers: teachers, Departments: departments}, nil
}
