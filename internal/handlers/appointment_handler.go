package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/dto"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/httpresp"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
	"github.com/BruksfildServices01/barberpro-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barberpro-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	repo         domain.Repository
	availability *ucAppointment.GetAvailability
	book         *ucAppointment.Book
	markStatus   *ucAppointment.MarkStatus
	cancel       *ucAppointment.CancelAppointment
	reschedule   *ucAppointment.Reschedule
	listByDate   *ucAppointment.ListAppointmentsByDate
	listByMonth  *ucAppointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	repo domain.Repository,
	availability *ucAppointment.GetAvailability,
	book *ucAppointment.Book,
	markStatus *ucAppointment.MarkStatus,
	cancel *ucAppointment.CancelAppointment,
	reschedule *ucAppointment.Reschedule,
	listByDate *ucAppointment.ListAppointmentsByDate,
	listByMonth *ucAppointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		repo:         repo,
		availability: availability,
		book:         book,
		markStatus:   markStatus,
		cancel:       cancel,
		reschedule:   reschedule,
		listByDate:   listByDate,
		listByMonth:  listByMonth,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ProfessionalID string `json:"professional_id"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required,hhmm"`

	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
	Notes       string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required,hhmm"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *AppointmentHandler) tenantTimezone(c *gin.Context, tenantID uint) (string, bool) {
	tenant, err := h.repo.GetTenant(c.Request.Context(), tenantID)
	if err != nil {
		fail(c, err)
		return "", false
	}
	return tenant.Timezone, true
}

func (h *AppointmentHandler) respond(c *gin.Context, tenantID uint, ap *models.Appointment) {
	tz, ok := h.tenantTimezone(c, tenantID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.FromAppointment(ap, timezone.Location(tz)))
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	tenantID := tenantFrom(c)

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	selector, err := domain.ParseSelector(c.Query("professional_id"))
	if err != nil {
		fail(c, err)
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		TenantID:     tenantID,
		ServiceID:    uint(serviceID),
		Date:         c.Query("date"),
		Professional: selector,
	})
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.List(c, slotsJSON(slots))
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	tenantID := tenantFrom(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	selector, err := domain.ParseSelector(req.ProfessionalID)
	if err != nil {
		fail(c, err)
		return
	}

	tz, ok := h.tenantTimezone(c, tenantID)
	if !ok {
		return
	}

	start, err := timezone.ParseDateTime(tz, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	res, err := h.book.Execute(c.Request.Context(), ucAppointment.BookInput{
		TenantID:     tenantID,
		ServiceID:    req.ServiceID,
		Professional: selector,
		Start:        start,
		ClientID:     req.ClientID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		Notes:        req.Notes,
		Confirm:      true,
		ActorID:      actorFrom(c),
	})
	if err != nil {
		fail(c, err)
		return
	}

	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, dto.FromAppointment(res.Appointment, timezone.Location(tz)))
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	tenantID := tenantFrom(c)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	professionalID, ok := optionalID(c, "professional_id")
	if !ok {
		return
	}

	aps, err := h.listByDate.Execute(c.Request.Context(), tenantID, professionalID, dateStr)
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.List(c, aps)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	tenantID := tenantFrom(c)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	professionalID, ok := optionalID(c, "professional_id")
	if !ok {
		return
	}

	aps, err := h.listByMonth.Execute(c.Request.Context(), tenantID, professionalID, year, month)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": aps,
	})
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	tenantID := tenantFrom(c)
	ap, err := h.cancel.Execute(c.Request.Context(), tenantID, actorFrom(c), id)
	if err != nil {
		fail(c, err)
		return
	}

	h.respond(c, tenantID, ap)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	to, err := domain.ParseStatus(req.Status)
	if err != nil {
		fail(c, err)
		return
	}

	tenantID := tenantFrom(c)
	ap, err := h.markStatus.Execute(c.Request.Context(), tenantID, actorFrom(c), id, to)
	if err != nil {
		fail(c, err)
		return
	}

	h.respond(c, tenantID, ap)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	tenantID := tenantFrom(c)

	id, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	tz, ok := h.tenantTimezone(c, tenantID)
	if !ok {
		return
	}

	start, err := timezone.ParseDateTime(tz, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), ucAppointment.RescheduleInput{
		TenantID:      tenantID,
		AppointmentID: id,
		NewStart:      start,
		ActorID:       actorFrom(c),
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAppointment(ap, timezone.Location(tz)))
}

// ======================================================
// JSON
// ======================================================

func slotsJSON(slots []domain.Slot) []dto.SlotDTO {
	out := make([]dto.SlotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, dto.SlotDTO{
			Start:          s.Start.Format("15:04"),
			End:            s.End.Format("15:04"),
			ProfessionalID: s.ProfessionalID,
		})
	}
	return out
}

func optionalID(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+name, "Parâmetro inválido.")
		return 0, false
	}
	return uint(id), true
}
