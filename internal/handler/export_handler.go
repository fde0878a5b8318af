package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avellar-lune/academy-records/internal/service"
	"github.com/avellar-lune/academy-records/pkg/config"
	appErrors "github.com/avellar-lune/academy-records/pkg/errors"
	"github.com/avellar-lune/academy-records/pkg/response"
)

// ExportHandler serves table exports as file downloads.
type ExportHandler struct {
	exports *service.ExportService
	cfg     config.ExportConfig
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService, cfg config.ExportConfig) *ExportHandler {
	return &ExportHandler{exports: exports, cfg: cfg}
}

// Students streams the full student table in the requested format.
func (h *ExportHandler) Students(c *gin.Context) {
	format, err := h.resolveFormat(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exports.Students(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	serve(c, file)
}

// Courses streams the full course table in the requested format.
func (h *ExportHandler) Courses(c *gin.Context) {
	format, err := h.resolveFormat(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exports.Courses(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	serve(c, file)
}

func (h *ExportHandler) resolveFormat(c *gin.Context) (string, error) {
	format := c.DefaultQuery("format", service.ExportFormatCSV)
	switch format {
	case service.ExportFormatCSV:
		if !h.cfg.CSVEnabled {
			return "", appErrors.Clone(appErrors.ErrValidation, "csv export is disabled")
		}
	case service.ExportFormatPDF:
		if !h.cfg.PDFEnabled {
			return "", appErrors.Clone(appErrors.ErrValidation, "pdf export is disabled")
		}
	}
	return format, nil
}

func serve(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Payload)
}
