package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/middleware"
)

type MeHandler struct {
	repo domain.Repository
}

func NewMeHandler(repo domain.Repository) *MeHandler {
	return &MeHandler{repo: repo}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	tenantID := tenantFrom(c)

	tenant, err := h.repo.GetTenant(c.Request.Context(), tenantID)
	if err != nil {
		fail(c, err)
		return
	}

	settings, err := h.repo.GetSettings(c.Request.Context(), tenantID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        c.MustGet(middleware.ContextUserID),
			"role":      c.GetString(middleware.ContextUserRole),
			"tenant_id": tenantID,
		},
		"tenant":   tenantJSON(tenant),
		"settings": settings,
	})
}
