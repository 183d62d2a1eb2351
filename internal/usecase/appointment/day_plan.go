package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

// dayPlan é o dia de um profissional: expediente e agendamentos vivos.
type dayPlan struct {
	professionalID uint
	working        bool
	day            schedule.Day
	booked         []models.Appointment
}

// load é o critério de balanceamento para "qualquer profissional".
func (p dayPlan) load() int {
	return len(p.booked)
}

func planDay(
	ctx context.Context,
	repo domain.Repository,
	calendar *schedule.Calendar,
	tenantID uint,
	professionalID uint,
	date time.Time,
) (dayPlan, error) {

	plan := dayPlan{professionalID: professionalID}

	w, ok, err := calendar.WorkingWindow(ctx, professionalID, date.Weekday())
	if err != nil || !ok {
		return plan, err
	}
	plan.working = true
	plan.day = w.On(date)

	from, to := dayBounds(date)
	plan.booked, err = repo.FindByProfessionalAndDateRange(ctx, tenantID, professionalID, from, to)
	if err != nil {
		return plan, err
	}
	return plan, nil
}

// freeStarts gera os inícios a cada granularity minutos a partir da
// abertura e, havendo pausa, recomeça a grade no fim da pausa. O serviço
// precisa caber inteiro antes do fechamento (ou da pausa).
func (p dayPlan) freeStarts(duration, granularity time.Duration) []time.Time {
	if !p.working || duration <= 0 || granularity <= 0 {
		return nil
	}

	type segment struct{ from, to time.Time }
	segments := []segment{{p.day.Start, p.day.End}}
	if p.day.HasBreak {
		segments = []segment{
			{p.day.Start, p.day.BreakStart},
			{p.day.BreakEnd, p.day.End},
		}
	}

	var out []time.Time
	for _, seg := range segments {
		for t := seg.from; !t.Add(duration).After(seg.to); t = t.Add(granularity) {
			end := t.Add(duration)
			if p.day.HitsBreak(t, end) {
				continue
			}
			if domain.OverlapsAny(t, end, p.booked) {
				continue
			}
			out = append(out, t)
		}
	}
	return out
}

// admits informa se [start, end) está livre e dentro do expediente.
func (p dayPlan) admits(start, end time.Time) bool {
	return p.working && p.day.Admits(start, end) && !domain.OverlapsAny(start, end, p.booked)
}
