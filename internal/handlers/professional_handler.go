package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barberpro-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/httpresp"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type ProfessionalHandler struct {
	repo    domain.Repository
	catalog catalog.Repository
	cache   domain.SlotCache
}

func NewProfessionalHandler(
	repo domain.Repository,
	catalog catalog.Repository,
	cache domain.SlotCache,
) *ProfessionalHandler {
	if cache == nil {
		cache = domain.NopCache{}
	}
	return &ProfessionalHandler{repo: repo, catalog: catalog, cache: cache}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateProfessionalRequest struct {
	Name              string  `json:"name" binding:"required"`
	Email             string  `json:"email" binding:"omitempty,email"`
	Phone             string  `json:"phone"`
	Bio               string  `json:"bio"`
	CommissionPercent float64 `json:"commission_percent" binding:"min=0,max=100"`
}

type UpdateProfessionalRequest struct {
	Name              *string  `json:"name"`
	Email             *string  `json:"email" binding:"omitempty,email"`
	Phone             *string  `json:"phone"`
	Bio               *string  `json:"bio"`
	CommissionPercent *float64 `json:"commission_percent" binding:"omitempty,min=0,max=100"`
	Active            *bool    `json:"active"`
}

type ScheduleRow struct {
	DayOfWeek  int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime  string `json:"start_time" binding:"omitempty,hhmm"`
	EndTime    string `json:"end_time" binding:"omitempty,hhmm"`
	BreakStart string `json:"break_start" binding:"omitempty,hhmm"`
	BreakEnd   string `json:"break_end" binding:"omitempty,hhmm"`
	IsDayOff   bool   `json:"is_day_off"`
}

type ReplaceSchedulesRequest struct {
	Schedules []ScheduleRow `json:"schedules" binding:"required,max=7,dive"`
}

// ======================================================
// HELPERS
// ======================================================

// owned busca o profissional do tenant autenticado. Outro tenant é 403.
func (h *ProfessionalHandler) owned(c *gin.Context) (*models.Professional, bool) {
	id, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return nil, false
	}

	p, err := h.repo.GetProfessional(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return nil, false
	}
	if p.TenantID != tenantFrom(c) {
		fail(c, httperr.TenantMismatch("professional_tenant_mismatch"))
		return nil, false
	}
	return p, true
}

// ======================================================
// CRUD
// ======================================================

func (h *ProfessionalHandler) List(c *gin.Context) {
	pros, err := h.catalog.ListProfessionals(c.Request.Context(), tenantFrom(c))
	if err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}
	httpresp.List(c, pros)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httperr.BadRequest(c, "invalid_name", "Nome obrigatório.")
		return
	}

	p := &models.Professional{
		TenantID:          tenantFrom(c),
		Name:              name,
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:             strings.TrimSpace(req.Phone),
		Bio:               strings.TrimSpace(req.Bio),
		CommissionPercent: req.CommissionPercent,
		Active:            true,
	}

	if err := h.catalog.CreateProfessional(c.Request.Context(), p); err != nil {
		httperr.Internal(c, "failed_to_create_professional", "Erro ao criar profissional.")
		return
	}

	h.cache.InvalidateTenant(c.Request.Context(), p.TenantID)

	c.JSON(http.StatusCreated, p)
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	p, ok := h.owned(c)
	if !ok {
		return
	}

	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Nome obrigatório.")
			return
		}
		p.Name = name
	}
	if req.Email != nil {
		p.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		p.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Bio != nil {
		p.Bio = strings.TrimSpace(*req.Bio)
	}
	if req.CommissionPercent != nil {
		p.CommissionPercent = *req.CommissionPercent
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	if err := h.catalog.SaveProfessional(c.Request.Context(), p); err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Erro ao atualizar profissional.")
		return
	}

	h.cache.InvalidateTenant(c.Request.Context(), p.TenantID)

	c.JSON(http.StatusOK, p)
}

// ======================================================
// SCHEDULES
// ======================================================

func (h *ProfessionalHandler) GetSchedules(c *gin.Context) {
	p, ok := h.owned(c)
	if !ok {
		return
	}

	rows, err := h.catalog.ListSchedules(c.Request.Context(), p.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_schedules", "Erro ao listar escala.")
		return
	}

	httpresp.List(c, rows)
}

// ReplaceSchedules troca a semana inteira. Dias ausentes ficam fechados.
func (h *ProfessionalHandler) ReplaceSchedules(c *gin.Context) {
	p, ok := h.owned(c)
	if !ok {
		return
	}

	var req ReplaceSchedulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	seen := make(map[int]bool, len(req.Schedules))
	rows := make([]models.ProfessionalSchedule, 0, len(req.Schedules))

	for _, r := range req.Schedules {
		if seen[r.DayOfWeek] {
			httperr.BadRequest(c, "duplicated_day_of_week", "Dia da semana repetido.")
			return
		}
		seen[r.DayOfWeek] = true

		row := models.ProfessionalSchedule{
			TenantID:       p.TenantID,
			ProfessionalID: p.ID,
			DayOfWeek:      r.DayOfWeek,
			StartTime:      r.StartTime,
			EndTime:        r.EndTime,
			BreakStart:     r.BreakStart,
			BreakEnd:       r.BreakEnd,
			IsDayOff:       r.IsDayOff,
		}
		if err := schedule.Validate(&row); err != nil {
			fail(c, err)
			return
		}
		rows = append(rows, row)
	}

	if err := h.catalog.ReplaceSchedules(c.Request.Context(), p.ID, rows); err != nil {
		httperr.Internal(c, "failed_to_save_schedules", "Erro ao salvar escala.")
		return
	}

	h.cache.InvalidateTenant(c.Request.Context(), p.TenantID)

	httpresp.List(c, rows)
}
