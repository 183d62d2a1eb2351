package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/dto"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute lista a agenda do dia. professionalID 0 traz todos os profissionais.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	tenantID uint,
	professionalID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	tenant, err := uc.repo.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	day, err := timezone.ParseDate(tenant.Timezone, date)
	if err != nil {
		return nil, httperr.Invalid("invalid_date")
	}

	start, end := dayBounds(day)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		tenantID,
		professionalID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return dto.FromAppointments(appointments, day.Location()), nil
}
