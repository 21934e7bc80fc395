package handler

import (
	"fmt"
	"net/http"

	"asset-vault-server/internal/common/httpx"
	reportservice "asset-vault-server/internal/modules/report/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	reportService *reportservice.Service
}

func New(reportService *reportservice.Service) *Handler {
	return &Handler{reportService: reportService}
}

func params(c *gin.Context) reportservice.Params {
	return reportservice.Params{
		Sections: c.Query("sections"),
		From:     c.Query("from"),
		To:       c.Query("to"),
	}
}

// ExportReport GET /api/admin/reports?sections=creator_rollup,top_favourited&from=2024-01-01&to=2024-12-31
func (h *Handler) ExportReport(c *gin.Context) {
	artifact, err := h.reportService.Export(c.Request.Context(), params(c))
	if err != nil {
		httpx.WriteServiceError(c, err, "生成报表失败")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}

func (h *Handler) PreviewReport(c *gin.Context) {
	data, err := h.reportService.Preview(c.Request.Context(), params(c))
	if err != nil {
		httpx.WriteServiceError(c, err, "生成报表失败")
		return
	}
	c.JSON(http.StatusOK, data)
}
