package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/httpresp"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
	"github.com/BruksfildServices01/barberpro-booking/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type CashflowHandler struct {
	repo    domain.Repository
	catalog catalog.Repository
}

func NewCashflowHandler(repo domain.Repository, catalog catalog.Repository) *CashflowHandler {
	return &CashflowHandler{repo: repo, catalog: catalog}
}

// --------- Requests ---------

type CreateCashflowCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required,oneof=income expense"`
}

type CreateCashflowEntryRequest struct {
	Type          string  `json:"type" binding:"required,oneof=income expense"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Date          string  `json:"date" binding:"required"`
	Description   string  `json:"description"`
	PaymentMethod string  `json:"payment_method"`
	CategoryID    *uint   `json:"category_id"`
	AppointmentID *uint   `json:"appointment_id"`
}

// ======================================================
// CATEGORIES
// ======================================================

func (h *CashflowHandler) ListCategories(c *gin.Context) {
	rows, err := h.catalog.ListCashflowCategories(c.Request.Context(), tenantFrom(c))
	if err != nil {
		httperr.Internal(c, "failed_to_list_categories", "Erro ao listar categorias.")
		return
	}
	httpresp.List(c, rows)
}

func (h *CashflowHandler) CreateCategory(c *gin.Context) {
	var req CreateCashflowCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httperr.BadRequest(c, "invalid_name", "Nome obrigatório.")
		return
	}

	cat := &models.CashflowCategory{TenantID: tenantFrom(c), Name: name, Type: req.Type}
	if err := h.catalog.CreateCashflowCategory(c.Request.Context(), cat); err != nil {
		httperr.Internal(c, "failed_to_create_category", "Erro ao criar categoria.")
		return
	}

	c.JSON(http.StatusCreated, cat)
}

// ======================================================
// ENTRIES
// ======================================================

// ListEntries: GET /me/cashflow?from=2026-03-01&to=2026-03-31 (datas inclusivas)
func (h *CashflowHandler) ListEntries(c *gin.Context) {
	tenantID := tenantFrom(c)

	tenant, err := h.repo.GetTenant(c.Request.Context(), tenantID)
	if err != nil {
		fail(c, err)
		return
	}

	from, err := timezone.ParseDate(tenant.Timezone, c.Query("from"))
	if err != nil {
		httperr.BadRequest(c, "invalid_period", "Período inválido.")
		return
	}
	to, err := timezone.ParseDate(tenant.Timezone, c.Query("to"))
	if err != nil || to.Before(from) {
		httperr.BadRequest(c, "invalid_period", "Período inválido.")
		return
	}

	rows, err := h.catalog.ListCashflowEntries(c.Request.Context(), tenantID, from, to.AddDate(0, 0, 1))
	if err != nil {
		httperr.Internal(c, "failed_to_list_cashflow", "Erro ao listar lançamentos.")
		return
	}
	httpresp.List(c, rows)
}

func (h *CashflowHandler) CreateEntry(c *gin.Context) {
	tenantID := tenantFrom(c)
	ctx := c.Request.Context()

	var req CreateCashflowEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	tenant, err := h.repo.GetTenant(ctx, tenantID)
	if err != nil {
		fail(c, err)
		return
	}

	date, err := parseEntryDate(tenant.Timezone, req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	if req.CategoryID != nil {
		cat, err := h.catalog.GetCashflowCategory(ctx, *req.CategoryID)
		if err != nil {
			fail(c, err)
			return
		}
		if cat.TenantID != tenantID {
			fail(c, httperr.TenantMismatch("category_tenant_mismatch"))
			return
		}
		if cat.Type != req.Type {
			httperr.BadRequest(c, "category_type_mismatch", "Categoria não corresponde ao tipo.")
			return
		}
	}

	if req.AppointmentID != nil {
		ap, err := h.repo.GetAppointment(ctx, *req.AppointmentID)
		if err != nil {
			fail(c, err)
			return
		}
		if ap.TenantID != tenantID {
			fail(c, httperr.TenantMismatch("appointment_tenant_mismatch"))
			return
		}
	}

	entry := &models.CashflowEntry{
		TenantID:      tenantID,
		Type:          req.Type,
		Amount:        req.Amount,
		Date:          date,
		Description:   strings.TrimSpace(req.Description),
		PaymentMethod: strings.ToLower(strings.TrimSpace(req.PaymentMethod)),
		CategoryID:    req.CategoryID,
		AppointmentID: req.AppointmentID,
	}

	if err := h.catalog.CreateCashflowEntry(ctx, entry); err != nil {
		httperr.Internal(c, "failed_to_create_cashflow", "Erro ao registrar lançamento.")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// parseEntryDate aceita "2006-01-02" (meia-noite no fuso do tenant) ou RFC3339.
func parseEntryDate(tz, raw string) (time.Time, error) {
	if t, err := timezone.ParseDate(tz, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
