package dto

import (
	"time"

	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

type AppointmentListDTO struct {
	ID               uint      `json:"id"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Status           string    `json:"status"`
	ProfessionalID   uint      `json:"professional_id"`
	ProfessionalName string    `json:"professional_name"`
	ClientName       string    `json:"client_name"`
	ClientPhone      string    `json:"client_phone"`
	ServiceName      string    `json:"service_name"`
	Price            float64   `json:"price"`
	Notes            string    `json:"notes"`
}

// FromAppointments converte para a agenda, com horários no fuso do tenant.
func FromAppointments(aps []models.Appointment, loc *time.Location) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, AppointmentListDTO{
			ID:               ap.ID,
			StartTime:        ap.ScheduledAt.In(loc),
			EndTime:          ap.EndsAt.In(loc),
			Status:           ap.Status,
			ProfessionalID:   ap.ProfessionalID,
			ProfessionalName: ap.Professional.Name,
			ClientName:       ap.Client.Name,
			ClientPhone:      ap.Client.Phone,
			ServiceName:      ap.Service.Name,
			Price:            ap.Price,
			Notes:            ap.Notes,
		})
	}
	return out
}

type SlotDTO struct {
	Start          string `json:"start"`
	End            string `json:"end"`
	ProfessionalID uint   `json:"professional_id"`
}
