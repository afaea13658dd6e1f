package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akademix/records-api/internal/dto"
	"github.com/akademix/records-api/internal/service"
	appErrors "github.com/akademix/records-api/pkg/errors"
	"github.com/akademix/records-api/pkg/response"
)

type exportService interface {
	Export(ctx context.Context, req dto.ExportRequest) (*service.ExportResult, error)
}

// ExportHandler serves rendered report files.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export godoc
// @Summary Export a report as CSV, JSON, or PDF
// @Tags Exports
// @Accept json
// @Produce octet-stream
// @Param request body dto.ExportRequest true "Export request"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /export [post]
func (h *ExportHandler) Export(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload"))
		return
	}

	result, err := h.service.Export(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
