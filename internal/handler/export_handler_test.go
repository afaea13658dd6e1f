package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/akademix/records-api/internal/dto"
	"github.com/akademix/records-api/internal/service"
	appErrors "github.com/akademix/records-api/pkg/errors"
)

type fakeExportSrv struct {
	result  *service.ExportResult
	err     error
	lastReq dto.ExportRequest
}

func (f *fakeExportSrv) Export(_ context.Context, req dto.ExportRequest) (*service.ExportResult, error) {
	f.lastReq = req
	return f.result, f.err
}

func TestExportHandlerServesAttachment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeExportSrv{
		result: &service.ExportResult{
			Filename:    "grades_report_20240315_103045.csv",
			ContentType: "text/csv; charset=utf-8",
			Data:        []byte("Grade ID\n"),
		},
	}
	handler := NewExportHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	body := `{"report_type":"grades","format":"csv","filters":{"semester":"2024-spring"}}`
	c.Request = httptest.NewRequest(http.MethodPost, "/export", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "grades", srv.lastReq.ReportType)
	assert.Equal(t, "2024-spring", srv.lastReq.Filters.Semester)
	assert.Equal(t, `attachment; filename="grades_report_20240315_103045.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Grade ID\n", rec.Body.String())
}

func TestExportHandlerRejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewExportHandler(&fakeExportSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/export", strings.NewReader("{"))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Export(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportHandlerPropagatesValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewExportHandler(&fakeExportSrv{
		err: appErrors.Clone(appErrors.ErrValidation, `unsupported export format "xlsx"`),
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/export", strings.NewReader(`{"report_type":"grades","format":"xlsx"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Export(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
