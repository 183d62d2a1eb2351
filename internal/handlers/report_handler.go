package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	ucReport "github.com/BruksfildServices01/barberpro-booking/internal/usecase/report"
)

type ReportHandler struct {
	summary *ucReport.GetSummary
}

func NewReportHandler(summary *ucReport.GetSummary) *ReportHandler {
	return &ReportHandler{summary: summary}
}

// Summary: GET /me/reports?from=2026-03-01&to=2026-03-31
func (h *ReportHandler) Summary(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		httperr.BadRequest(c, "missing_period", "Informe from e to.")
		return
	}

	sum, err := h.summary.Execute(c.Request.Context(), tenantFrom(c), from, to)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, sum)
}
