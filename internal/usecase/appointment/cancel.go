package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

// CancelAppointment libera o horário do agendamento.
type CancelAppointment struct {
	status *MarkStatus
}

func NewCancelAppointment(status *MarkStatus) *CancelAppointment {
	return &CancelAppointment{status: status}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	tenantID uint,
	actorID *uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.status.Execute(ctx, tenantID, actorID, appointmentID, domain.StatusCancelled)
}
