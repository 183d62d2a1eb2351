package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/httpresp"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

type ServiceHandler struct {
	repo    domain.Repository
	catalog catalog.Repository
	cache   domain.SlotCache
}

func NewServiceHandler(
	repo domain.Repository,
	catalog catalog.Repository,
	cache domain.SlotCache,
) *ServiceHandler {
	if cache == nil {
		cache = domain.NopCache{}
	}
	return &ServiceHandler{repo: repo, catalog: catalog, cache: cache}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0,max=720"`
	Price           float64 `json:"price" binding:"gte=0"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,gt=0,max=720"`
	Price           *float64 `json:"price" binding:"omitempty,gte=0"`
	Active          *bool    `json:"active"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	services, err := h.catalog.ListServices(c.Request.Context(), tenantFrom(c), activeOnly)
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httperr.BadRequest(c, "invalid_name", "Nome obrigatório.")
		return
	}

	svc := &models.Service{
		TenantID:        tenantFrom(c),
		Name:            name,
		Description:     strings.TrimSpace(req.Description),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          true,
	}

	if err := h.catalog.CreateService(c.Request.Context(), svc); err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	tenantID := tenantFrom(c)

	id, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	svc, err := h.repo.GetService(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if svc.TenantID != tenantID {
		fail(c, httperr.TenantMismatch("service_tenant_mismatch"))
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Nome obrigatório.")
			return
		}
		svc.Name = name
	}
	if req.Description != nil {
		svc.Description = strings.TrimSpace(*req.Description)
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.catalog.SaveService(c.Request.Context(), svc); err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	// agendamentos existentes mantêm o snapshot de duração e preço
	h.cache.InvalidateTenant(c.Request.Context(), tenantID)

	c.JSON(http.StatusOK, svc)
}
