package appointment

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/barberpro-booking/internal/audit"
	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
	"github.com/BruksfildServices01/barberpro-booking/internal/timezone"
)

type MarkStatus struct {
	repo     domain.Repository
	cache    domain.SlotCache
	clock    timezone.Clock
	audit    *audit.Dispatcher
	mismatch mismatchReporter
}

func NewMarkStatus(
	repo domain.Repository,
	cache domain.SlotCache,
	clock timezone.Clock,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *MarkStatus {
	if cache == nil {
		cache = domain.NopCache{}
	}
	if clock == nil {
		clock = timezone.SystemClock
	}
	if log == nil {
		log = slog.Default()
	}
	return &MarkStatus{
		repo:     repo,
		cache:    cache,
		clock:    clock,
		audit:    audit,
		mismatch: mismatchReporter{log: log, audit: audit},
	}
}

func (uc *MarkStatus) Execute(
	ctx context.Context,
	tenantID uint,
	actorID *uint,
	appointmentID uint,
	to domain.Status,
) (*models.Appointment, error) {

	ap, err := uc.mismatch.appointment(ctx, uc.repo, tenantID, appointmentID)
	if err != nil {
		return nil, err
	}

	from := domain.Status(ap.Status)
	now := uc.clock()
	if err := domain.Transition(ap, to, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateStatus(ctx, ap, from); err != nil {
		return nil, err
	}

	if !to.IsLive() {
		tenant, err := uc.repo.GetTenant(ctx, tenantID)
		if err == nil {
			uc.cache.InvalidateDay(ctx, tenantID, dateKey(ap.ScheduledAt.In(timezone.Location(tenant.Timezone))))
		}
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   actorID,
		Action:   "appointment_" + string(to),
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"from": from, "to": to},
	})

	return ap, nil
}
