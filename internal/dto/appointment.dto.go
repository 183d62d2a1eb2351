package dto

import (
	"time"

	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

// AppointmentDTO é a resposta das escritas na agenda: só ids e o
// snapshot gravado, sem as associações.
type AppointmentDTO struct {
	ID              uint      `json:"id"`
	Status          string    `json:"status"`
	ProfessionalID  uint      `json:"professional_id"`
	ClientID        uint      `json:"client_id"`
	ServiceID       uint      `json:"service_id"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
	Notes           string    `json:"notes,omitempty"`
}

func FromAppointment(ap *models.Appointment, loc *time.Location) AppointmentDTO {
	return AppointmentDTO{
		ID:              ap.ID,
		Status:          ap.Status,
		ProfessionalID:  ap.ProfessionalID,
		ClientID:        ap.ClientID,
		ServiceID:       ap.ServiceID,
		Start:           ap.ScheduledAt.In(loc),
		End:             ap.EndsAt.In(loc),
		DurationMinutes: ap.DurationMinutes,
		Price:           ap.Price,
		Notes:           ap.Notes,
	}
}
