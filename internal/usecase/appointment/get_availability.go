package appointment

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/barberpro-booking/internal/audit"
	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/metrics"
	"github.com/BruksfildServices01/barberpro-booking/internal/timezone"
)

type GetAvailability struct {
	repo     domain.Repository
	calendar *schedule.Calendar
	cache    domain.SlotCache
	clock    timezone.Clock
	mismatch mismatchReporter
}

func NewGetAvailability(
	repo domain.Repository,
	calendar *schedule.Calendar,
	cache domain.SlotCache,
	clock timezone.Clock,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *GetAvailability {
	if cache == nil {
		cache = domain.NopCache{}
	}
	if clock == nil {
		clock = timezone.SystemClock
	}
	if log == nil {
		log = slog.Default()
	}
	return &GetAvailability{
		repo:     repo,
		calendar: calendar,
		cache:    cache,
		clock:    clock,
		mismatch: mismatchReporter{log: log, audit: audit},
	}
}

// Execute devolve os horários livres do dia em ordem, sem repetição. Lista
// vazia significa "agenda cheia" e não é erro.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.Slot, error) {

	began := time.Now()

	pol, err := loadPolicy(ctx, uc.repo, in.TenantID)
	if err != nil {
		return nil, err
	}

	svc, err := uc.mismatch.service(ctx, uc.repo, in.TenantID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	date, err := time.ParseInLocation("2006-01-02", in.Date, pol.loc)
	if err != nil {
		return nil, httperr.Invalid("invalid_date")
	}

	now := uc.clock().In(pol.loc)
	if date.Before(timezone.StartOfDay(now)) {
		return nil, httperr.Invalid("date_in_past")
	}

	professionalIDs, err := uc.candidates(ctx, pol, in)
	if err != nil {
		return nil, err
	}

	key := domain.SlotKey{
		TenantID:    in.TenantID,
		Date:        in.Date,
		Duration:    svc.DurationMinutes,
		Granularity: pol.granularity,
		Selector:    in.Professional.String(),
	}

	slots, hit := uc.cache.Get(ctx, key)
	if !hit {
		slots, err = uc.resolve(ctx, in.TenantID, professionalIDs, date, svc.DurationMinutes, pol.granularity)
		if err != nil {
			return nil, err
		}
		uc.cache.Set(ctx, key, slots)
	}

	out := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		if pol.withinAdvance(s.Start, now) == nil {
			s.Start = s.Start.In(pol.loc)
			s.End = s.End.In(pol.loc)
			out = append(out, s)
		}
	}

	metrics.Availability(hit, time.Since(began))
	return out, nil
}

func (uc *GetAvailability) candidates(
	ctx context.Context,
	pol *policy,
	in domain.AvailabilityInput,
) ([]uint, error) {

	if !in.Professional.IsAny() {
		p, err := uc.mismatch.professional(ctx, uc.repo, in.TenantID, in.Professional.ID())
		if err != nil {
			return nil, err
		}
		return []uint{p.ID}, nil
	}

	if !pol.allowAny {
		return nil, httperr.Invalid("any_professional_not_allowed")
	}

	pros, err := uc.repo.ListActiveProfessionals(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(pros))
	for _, p := range pros {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// resolve calcula os candidatos do dia, sem o filtro de antecedência.
func (uc *GetAvailability) resolve(
	ctx context.Context,
	tenantID uint,
	professionalIDs []uint,
	date time.Time,
	durationMinutes int,
	granularityMinutes int,
) ([]domain.Slot, error) {

	plans := make([]dayPlan, len(professionalIDs))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range professionalIDs {
		g.Go(func() error {
			plan, err := planDay(gctx, uc.repo, uc.calendar, tenantID, id, date)
			if err != nil {
				return err
			}
			plans[i] = plan
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	duration := time.Duration(durationMinutes) * time.Minute
	granularity := time.Duration(granularityMinutes) * time.Minute

	best := map[int64]domain.Slot{}
	loads := map[uint]int{}

	for _, plan := range plans {
		loads[plan.professionalID] = plan.load()

		for _, start := range plan.freeStarts(duration, granularity) {
			k := start.Unix()
			cur, taken := best[k]
			if taken && !lighter(plan.professionalID, cur.ProfessionalID, loads) {
				continue
			}
			best[k] = domain.Slot{
				Start:          start,
				End:            start.Add(duration),
				ProfessionalID: plan.professionalID,
			}
		}
	}

	slots := make([]domain.Slot, 0, len(best))
	for _, s := range best {
		slots = append(slots, s)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })

	return slots, nil
}

// lighter: menos agendamentos no dia, empate para o menor id.
func lighter(a, b uint, loads map[uint]int) bool {
	if loads[a] != loads[b] {
		return loads[a] < loads[b]
	}
	return a < b
}
