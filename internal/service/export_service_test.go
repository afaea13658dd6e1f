package service

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akademix/records-api/internal/dto"
	"github.com/akademix/records-api/internal/models"
	appErrors "github.com/akademix/records-api/pkg/errors"
)

func newTestExportService(fetcher *fakeRowFetcher) *ExportService {
	svc := NewExportService(NewReportService(fetcher, nil, nil), nil, ExportServiceConfig{})
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 10, 30, 45, 0, time.UTC) }
	return svc
}

func TestExportRejectsUnknownTypeAndFormat(t *testing.T) {
	svc := newTestExportService(&fakeRowFetcher{})

	_, err := svc.Export(context.Background(), dto.ExportRequest{ReportType: "attendance", Format: "csv"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Export(context.Background(), dto.ExportRequest{ReportType: "grades", Format: "xlsx"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportRowLimit(t *testing.T) {
	fetcher := &fakeRowFetcher{
		enrollments: []models.EnrollmentRow{
			{EnrollmentID: "e1", Status: "approved"},
			{EnrollmentID: "e2", Status: "pending"},
			{EnrollmentID: "e3", Status: "approved"},
		},
	}
	svc := newTestExportService(fetcher)
	svc.cfg.MaxRows = 2

	_, err := svc.Export(context.Background(), dto.ExportRequest{ReportType: "enrollments", Format: "csv"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "2 row limit")

	// at the limit the export still renders
	svc.cfg.MaxRows = 3
	_, err = svc.Export(context.Background(), dto.ExportRequest{ReportType: "enrollments", Format: "csv"})
	require.NoError(t, err)
}

func TestExportTimeoutBoundsFetch(t *testing.T) {
	fetcher := &fakeRowFetcher{}
	svc := newTestExportService(fetcher)
	svc.cfg.Timeout = 30 * time.Second

	_, err := svc.Export(context.Background(), dto.ExportRequest{ReportType: "grades", Format: "json"})
	require.NoError(t, err)

	require.NotNil(t, fetcher.lastCtx)
	_, ok := fetcher.lastCtx.Deadline()
	assert.True(t, ok)
}

func TestExportFilenameStem(t *testing.T) {
	svc := newTestExportService(&fakeRowFetcher{})

	result, err := svc.Export(context.Background(), dto.ExportRequest{ReportType: "enrollments", Format: "csv"})
	require.NoError(t, err)
	assert.Equal(t, "enrollments_report_20240315_103045.csv", result.Filename)

	result, err = svc.Export(context.Background(), dto.ExportRequest{ReportType: "teachers", Format: "json"})
	require.NoError(t, err)
	assert.Equal(t, "teachers_report_20240315_103045.json", result.Filename)
}

func TestExportCSV_BOMAndTimestamps(t *testing.T) {
	created := time.Date(2024, 1, 5, 8, 15, 30, 0, time.UTC)
	fetcher := &fakeRowFetcher{
		enrollments: []models.EnrollmentRow{
			{EnrollmentID: "e1", Status: "approved", StudentName: strPtr("José"), CreatedAt: created},
		},
	}
	svc := newTestExportService(fetcher)

	result, err := svc.Export(context.Background(), dto.ExportRequest{ReportType: "enrollments", Format: "csv"})
	require.NoError(t, err)

	assert.Equal(t, "text/csv; charset=utf-8", result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Data, []byte{0xEF, 0xBB, 0xBF}))

	body := string(result.Data[3:])
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Enrollment ID,Student,Department,Grade Level,Course Code,Course,Category,Teacher,Status,Score,Letter,Created At", lines[0])
	assert.Contains(t, lines[1], "José")
	assert.Contains(t, lines[1], "2024-01-05 08:15:30")
}

func TestExportCSV_EmptyResultHeaderOnly(t *testing.T) {
	svc := newTestExportService(&fakeRowFetcher{})

	result, err := svc.Export(context.Background(), dto.ExportRequest{ReportType: "grades", Format: "csv"})
	require.NoError(t, err)

	body := strings.TrimRight(string(result.Data[3:]), "\n")
	assert.NotContains(t, body, "\n")
	assert.True(t, strings.HasPrefix(body, "Grade ID,"))
}

func TestExportJSON_OrderedFieldsAndLiteralUnicode(t *testing.T) {
	created := time.Date(2024, 1, 5, 8, 15, 30, 0, time.UTC)
	fetcher := &fakeRowFetcher{
		grades: []models.GradeRow{
			{GradeID: "g1", Score: floatPtr(88.5), Letter: strPtr("B"), GPA: 3.3, Semester: "2024-spring",
				StudentName: strPtr("Zoë"), CreatedAt: created},
		},
	}
	svc := newTestExportService(fetcher)

	result, err := svc.Export(context.Background(), dto.ExportRequest{ReportType: "grades", Format: "json"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", result.ContentType)

	// literal non-ASCII, no \u escapes
	assert.Contains(t, string(result.Data), "Zoë")
	assert.NotContains(t, string(result.Data), `\u`)
	// timestamps use RFC3339 in JSON exports
	assert.Contains(t, string(result.Data), "2024-01-05T08:15:30Z")

	// field order inside each object follows the header order
	gradeIdx := strings.Index(string(result.Data), `"Grade ID"`)
	studentIdx := strings.Index(string(result.Data), `"Student"`)
	createdIdx := strings.Index(string(result.Data), `"Created At"`)
	assert.Less(t, gradeIdx, studentIdx)
	assert.Less(t, studentIdx, createdIdx)

	var parsed []map[string]string
	require.NoError(t, json.Unmarshal(result.Data, &parsed))
	require.Len(t, parsed, 1)
	assert.Equal(t, "88.50", parsed[0]["Score"])
	assert.Equal(t, "3.30", parsed[0]["GPA"])
}

func TestExportJSON_EmptyResultIsEmptyArray(t *testing.T) {
	svc := newTestExportService(&fakeRowFetcher{})

	result, err := svc.Export(context.Background(), dto.ExportRequest{ReportType: "enrollments", Format: "json"})
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(result.Data))
}

func TestExportPDF_RendersDocument(t *testing.T) {
	fetcher := &fakeRowFetcher{
		teachers: []models.TeacherRow{
			{TeacherID: "t1", TeacherName: "Ada", Department: strPtr("Science"), Title: "Professor"},
		},
	}
	svc := newTestExportService(fetcher)

	result, err := svc.Export(context.Background(), dto.ExportRequest{ReportType: "teachers", Format: "pdf"})
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Data, []byte("%PDF")))
	assert.Equal(t, "teachers_report_20240315_103045.pdf", result.Filename)
}

func TestExportPropagatesFilterValidation(t *testing.T) {
	svc := newTestExportService(&fakeRowFetcher{})

	_, err := svc.Export(context.Background(), dto.ExportRequest{
		ReportType: "enrollments",
		Format:     "csv",
		Filters:    dto.ReportFilterRequest{StartDate: "not-a-date"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
