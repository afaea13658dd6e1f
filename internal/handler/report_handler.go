package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akademix/records-api/internal/dto"
	appErrors "github.com/akademix/records-api/pkg/errors"
	"github.com/akademix/records-api/pkg/response"
)

type reportService interface {
	EnrollmentReport(ctx context.Context, req dto.ReportFilterRequest) (*dto.EnrollmentReportResponse, error)
	GradeReport(ctx context.Context, req dto.ReportFilterRequest) (*dto.GradeReportResponse, error)
	TeacherReport(ctx context.Context, req dto.ReportFilterRequest) (*dto.TeacherReportResponse, error)
}

// ReportHandler exposes the reporting endpoints. Each report accepts the same
// filter payload either as query parameters (GET) or a JSON body (POST).
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs the handler.
func NewReportHandler(service reportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Enrollments godoc
// @Summary Enrollment report
// @Tags Reports
// @Accept json
// @Produce json
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Param department query string false "Department filter"
// @Param grade_level query string false "Grade level filter"
// @Param course_category query string false "Course category filter"
// @Param semester query string false "Semester filter"
// @Param teacher_id query string false "Teacher ID filter"
// @Success 200 {object} response.Envelope
// @Router /reports/enrollments [get]
func (h *ReportHandler) Enrollments(c *gin.Context) {
	req, err := bindFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.service.EnrollmentReport(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// Grades godoc
// @Summary Grade report
// @Tags Reports
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/grades [get]
func (h *ReportHandler) Grades(c *gin.Context) {
	req, err := bindFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.service.GradeReport(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// Teachers godoc
// @Summary Teacher workload report
// @Tags Reports
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/teachers [get]
func (h *ReportHandler) Teachers(c *gin.Context) {
	req, err := bindFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.service.TeacherReport(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// bindFilter reads the filter from query parameters on GET and from the JSON
// body otherwise. An empty POST body is treated as an unfiltered request.
func bindFilter(c *gin.Context) (dto.ReportFilterRequest, error) {
	var req dto.ReportFilterRequest
	if c.Request.Method == http.MethodGet {
		if err := c.ShouldBindQuery(&req); err != nil {
			return dto.ReportFilterRequest{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid filter parameters")
		}
		return req, nil
	}
	if c.Request.ContentLength == 0 {
		return req, nil
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return dto.ReportFilterRequest{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid filter payload")
	}
	return req, nil
}
