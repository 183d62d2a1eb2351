package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
	"github.com/BruksfildServices01/barberpro-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barberpro-booking/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	repo         domain.Repository
	catalog      catalog.Repository
	availability *ucAppointment.GetAvailability
	book         *ucAppointment.Book
}

func NewPublicHandler(
	repo domain.Repository,
	catalog catalog.Repository,
	availability *ucAppointment.GetAvailability,
	book *ucAppointment.Book,
) *PublicHandler {
	return &PublicHandler{
		repo:         repo,
		catalog:      catalog,
		availability: availability,
		book:         book,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName     string `json:"client_name" binding:"required"`
	ClientPhone    string `json:"client_phone" binding:"required"`
	ClientEmail    string `json:"client_email"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	ProfessionalID string `json:"professional_id"`
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string `json:"time" binding:"required,hhmm"`
	Notes          string `json:"notes"`
}

type publicProfessional struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
}

// tenantBySlug escreve 404 quando o slug não existe.
func (h *PublicHandler) tenantBySlug(c *gin.Context) (*models.Tenant, bool) {
	tenant, err := h.repo.GetTenantBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.NotFoundResponse(c, "tenant_not_found", "Barbearia não encontrada.")
		return nil, false
	}
	return tenant, true
}

////////////////////////////////////////////////////////
// TENANT
////////////////////////////////////////////////////////

func (h *PublicHandler) GetTenant(c *gin.Context) {
	tenant, ok := h.tenantBySlug(c)
	if !ok {
		return
	}

	settings, err := h.repo.GetSettings(c.Request.Context(), tenant.ID)
	if err != nil {
		fail(c, err)
		return
	}

	body := tenantJSON(tenant)
	body["allow_any_professional"] = settings.AllowAnyProfessional
	body["slot_duration_minutes"] = settings.SlotDurationMinutes
	c.JSON(http.StatusOK, body)
}

////////////////////////////////////////////////////////
// CATÁLOGO
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	tenant, ok := h.tenantBySlug(c)
	if !ok {
		return
	}

	services, err := h.catalog.ListServices(c.Request.Context(), tenant.ID, true)
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tenant":   tenantJSON(tenant),
		"services": services,
	})
}

func (h *PublicHandler) ListProfessionals(c *gin.Context) {
	tenant, ok := h.tenantBySlug(c)
	if !ok {
		return
	}

	pros, err := h.repo.ListActiveProfessionals(c.Request.Context(), tenant.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	out := make([]publicProfessional, 0, len(pros))
	for _, p := range pros {
		out = append(out, publicProfessional{
			ID:        p.ID,
			Name:      p.Name,
			Bio:       p.Bio,
			AvatarURL: p.AvatarURL,
		})
	}

	c.JSON(http.StatusOK, gin.H{"professionals": out})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	selector, err := domain.ParseSelector(c.Query("professional_id"))
	if err != nil {
		fail(c, err)
		return
	}

	tenant, ok := h.tenantBySlug(c)
	if !ok {
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		TenantID:     tenant.ID,
		ServiceID:    uint(serviceID),
		Date:         dateStr,
		Professional: selector,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slotsJSON(slots),
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	selector, err := domain.ParseSelector(req.ProfessionalID)
	if err != nil {
		fail(c, err)
		return
	}

	tenant, ok := h.tenantBySlug(c)
	if !ok {
		return
	}

	start, err := timezone.ParseDateTime(tenant.Timezone, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	res, err := h.book.Execute(c.Request.Context(), ucAppointment.BookInput{
		TenantID:     tenant.ID,
		ServiceID:    req.ServiceID,
		Professional: selector,
		Start:        start,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		Notes:        req.Notes,
	})
	if err != nil {
		fail(c, err)
		return
	}

	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}

	loc := timezone.Location(tenant.Timezone)
	c.JSON(status, gin.H{
		"id":              res.Appointment.ID,
		"status":          res.Appointment.Status,
		"professional_id": res.Appointment.ProfessionalID,
		"service_id":      res.Appointment.ServiceID,
		"start":           res.Appointment.ScheduledAt.In(loc),
		"end":             res.Appointment.EndsAt.In(loc),
		"price":           res.Appointment.Price,
	})
}
