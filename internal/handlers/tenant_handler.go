package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type TenantHandler struct {
	repo    domain.Repository
	catalog catalog.Repository
	cache   domain.SlotCache
}

func NewTenantHandler(
	repo domain.Repository,
	catalog catalog.Repository,
	cache domain.SlotCache,
) *TenantHandler {
	if cache == nil {
		cache = domain.NopCache{}
	}
	return &TenantHandler{repo: repo, catalog: catalog, cache: cache}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateTenantRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	WhatsApp *string `json:"whatsapp"`
	Address  *string `json:"address"`
	Timezone *string `json:"timezone"`
}

type UpdateSettingsRequest struct {
	MinAdvanceHours      *int  `json:"min_advance_hours" binding:"omitempty,min=0,max=720"`
	MaxAdvanceDays       *int  `json:"max_advance_days" binding:"omitempty,min=1,max=365"`
	SlotDurationMinutes  *int  `json:"slot_duration_minutes" binding:"omitempty,min=5,max=240"`
	AllowAnyProfessional *bool `json:"allow_any_professional"`
	AutoConfirm          *bool `json:"auto_confirm"`
}

// ======================================================
// TENANT
// ======================================================

func (h *TenantHandler) Get(c *gin.Context) {
	tenant, err := h.repo.GetTenant(c.Request.Context(), tenantFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tenantJSON(tenant))
}

func (h *TenantHandler) Update(c *gin.Context) {
	tenantID := tenantFrom(c)

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	tenant, err := h.repo.GetTenant(c.Request.Context(), tenantID)
	if err != nil {
		fail(c, err)
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Nome obrigatório.")
			return
		}
		tenant.Name = name
	}
	if req.Phone != nil {
		tenant.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.WhatsApp != nil {
		tenant.WhatsApp = strings.TrimSpace(*req.WhatsApp)
	}
	if req.Address != nil {
		tenant.Address = strings.TrimSpace(*req.Address)
	}

	tzChanged := false
	if req.Timezone != nil && *req.Timezone != tenant.Timezone {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		tenant.Timezone = *req.Timezone
		tzChanged = true
	}

	if err := h.catalog.SaveTenant(c.Request.Context(), tenant); err != nil {
		httperr.Internal(c, "failed_to_update_tenant", "Erro ao atualizar barbearia.")
		return
	}

	if tzChanged {
		h.cache.InvalidateTenant(c.Request.Context(), tenantID)
	}

	c.JSON(http.StatusOK, tenantJSON(tenant))
}

// ======================================================
// SETTINGS
// ======================================================

func (h *TenantHandler) GetSettings(c *gin.Context) {
	settings, err := h.repo.GetSettings(c.Request.Context(), tenantFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *TenantHandler) UpdateSettings(c *gin.Context) {
	tenantID := tenantFrom(c)

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	settings, err := h.repo.GetSettings(c.Request.Context(), tenantID)
	if err != nil {
		fail(c, err)
		return
	}

	if req.MinAdvanceHours != nil {
		settings.MinAdvanceHours = *req.MinAdvanceHours
	}
	if req.MaxAdvanceDays != nil {
		settings.MaxAdvanceDays = *req.MaxAdvanceDays
	}
	if req.SlotDurationMinutes != nil {
		settings.SlotDurationMinutes = *req.SlotDurationMinutes
	}
	if req.AllowAnyProfessional != nil {
		settings.AllowAnyProfessional = *req.AllowAnyProfessional
	}
	if req.AutoConfirm != nil {
		settings.AutoConfirm = *req.AutoConfirm
	}

	if settings.MinAdvanceHours >= settings.MaxAdvanceDays*24 {
		httperr.BadRequest(c, "invalid_advance_window", "Antecedência mínima maior que a máxima.")
		return
	}

	if err := h.catalog.SaveSettings(c.Request.Context(), settings); err != nil {
		httperr.Internal(c, "failed_to_update_settings", "Erro ao salvar configurações.")
		return
	}

	h.cache.InvalidateTenant(c.Request.Context(), tenantID)

	c.JSON(http.StatusOK, settings)
}
