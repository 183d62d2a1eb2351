package appointment

import (
	"context"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/barberpro-booking/internal/audit"
	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
	"github.com/BruksfildServices01/barberpro-booking/internal/timezone"
)

type RescheduleInput struct {
	TenantID      uint
	AppointmentID uint
	NewStart      time.Time
	ActorID       *uint
}

// Reschedule cancela o agendamento e reserva o novo horário na mesma
// transação. Em conflito o agendamento original continua valendo.
type Reschedule struct {
	repo     domain.Repository
	calendar *schedule.Calendar
	cache    domain.SlotCache
	clock    timezone.Clock
	audit    *audit.Dispatcher
	mismatch mismatchReporter
}

func NewReschedule(
	repo domain.Repository,
	calendar *schedule.Calendar,
	cache domain.SlotCache,
	clock timezone.Clock,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *Reschedule {
	if cache == nil {
		cache = domain.NopCache{}
	}
	if clock == nil {
		clock = timezone.SystemClock
	}
	if log == nil {
		log = slog.Default()
	}
	return &Reschedule{
		repo:     repo,
		calendar: calendar,
		cache:    cache,
		clock:    clock,
		audit:    audit,
		mismatch: mismatchReporter{log: log, audit: audit},
	}
}

func (uc *Reschedule) Execute(ctx context.Context, in RescheduleInput) (*models.Appointment, error) {

	pol, err := loadPolicy(ctx, uc.repo, in.TenantID)
	if err != nil {
		return nil, err
	}

	old, err := uc.mismatch.appointment(ctx, uc.repo, in.TenantID, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	from := domain.Status(old.Status)
	if from != domain.StatusPending && from != domain.StatusConfirmed {
		return nil, httperr.Invalid("invalid_state")
	}

	if _, err := uc.mismatch.professional(ctx, uc.repo, in.TenantID, old.ProfessionalID); err != nil {
		return nil, err
	}

	if in.NewStart.IsZero() {
		return nil, httperr.Invalid("invalid_date_or_time")
	}
	start := in.NewStart.In(pol.loc)
	end := start.Add(time.Duration(old.DurationMinutes) * time.Minute)

	now := uc.clock()
	if err := pol.withinAdvance(start, now); err != nil {
		return nil, err
	}

	w, ok, err := uc.calendar.WorkingWindow(ctx, old.ProfessionalID, start.Weekday())
	if err != nil {
		return nil, err
	}
	if !ok || !w.On(start).Admits(start, end) {
		return nil, httperr.Invalid("outside_working_hours")
	}

	oldDay := dateKey(old.ScheduledAt.In(pol.loc))

	next := &models.Appointment{
		TenantID:        old.TenantID,
		ProfessionalID:  old.ProfessionalID,
		ClientID:        old.ClientID,
		ServiceID:       old.ServiceID,
		ScheduledAt:     start,
		EndsAt:          end,
		DurationMinutes: old.DurationMinutes,
		Price:           old.Price,
		Status:          old.Status,
		Notes:           old.Notes,
		IdempotencyKey: domain.IdempotencyKey(
			old.TenantID,
			domain.Specific(old.ProfessionalID),
			start,
			old.ClientID,
		),
	}

	if err := domain.Cancel(old, now); err != nil {
		return nil, err
	}

	stored, err := uc.repo.Reschedule(ctx, old, from, next)
	if err != nil {
		return nil, err
	}

	uc.cache.InvalidateDay(ctx, in.TenantID, oldDay)
	uc.cache.InvalidateDay(ctx, in.TenantID, dateKey(start))

	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		UserID:   in.ActorID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &stored.ID,
		Metadata: map[string]any{
			"previous_id":  old.ID,
			"scheduled_at": stored.ScheduledAt,
		},
	})

	return stored, nil
}
