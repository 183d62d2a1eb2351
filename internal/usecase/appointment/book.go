package appointment

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/BruksfildServices01/barberpro-booking/internal/audit"
	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/metrics"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
	"github.com/BruksfildServices01/barberpro-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	TenantID     uint
	ServiceID    uint
	Professional domain.ProfessionalSelector
	Start        time.Time

	// ClientID identifica um cliente existente. Sem ele, o cliente é
	// buscado ou criado pelo telefone.
	ClientID    uint
	ClientName  string
	ClientPhone string
	ClientEmail string

	Notes string

	// Confirm: reservas feitas pela equipe já nascem confirmadas.
	Confirm bool
	ActorID *uint
}

type BookResult struct {
	Appointment *models.Appointment
	// Replayed indica que a mesma tentativa já tinha sido gravada.
	Replayed bool
}

// ======================================================
// USE CASE
// ======================================================

type Book struct {
	repo     domain.Repository
	calendar *schedule.Calendar
	cache    domain.SlotCache
	clock    timezone.Clock
	audit    *audit.Dispatcher
	log      *slog.Logger
	mismatch mismatchReporter
}

func NewBook(
	repo domain.Repository,
	calendar *schedule.Calendar,
	cache domain.SlotCache,
	clock timezone.Clock,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *Book {
	if cache == nil {
		cache = domain.NopCache{}
	}
	if clock == nil {
		clock = timezone.SystemClock
	}
	if log == nil {
		log = slog.Default()
	}
	return &Book{
		repo:     repo,
		calendar: calendar,
		cache:    cache,
		clock:    clock,
		audit:    audit,
		log:      log,
		mismatch: mismatchReporter{log: log, audit: audit},
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute transforma o horário escolhido num agendamento. Em conflito o
// chamador deve buscar a disponibilidade de novo; nunca outro horário é
// escolhido no lugar do pedido.
func (uc *Book) Execute(ctx context.Context, in BookInput) (*BookResult, error) {
	res, err := uc.execute(ctx, in)
	metrics.Booking(outcomeOf(res, err))
	return res, err
}

func (uc *Book) execute(ctx context.Context, in BookInput) (*BookResult, error) {

	// --------------------------------------------------
	// 1️⃣ Tenant + política
	// --------------------------------------------------
	pol, err := loadPolicy(ctx, uc.repo, in.TenantID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Serviço (duração vira snapshot)
	// --------------------------------------------------
	svc, err := uc.mismatch.service(ctx, uc.repo, in.TenantID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Janela de antecedência
	// --------------------------------------------------
	if in.Start.IsZero() {
		return nil, httperr.Invalid("invalid_date_or_time")
	}
	start := in.Start.In(pol.loc)
	end := start.Add(time.Duration(svc.DurationMinutes) * time.Minute)

	if err := pol.withinAdvance(start, uc.clock()); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Profissionais candidatos (Any só é resolvido aqui)
	// --------------------------------------------------
	plans, err := uc.candidates(ctx, pol, in, start, end)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Cliente (só depois de o horário ser aceito)
	// --------------------------------------------------
	client, err := uc.resolveClient(ctx, in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Verificação + inserção atômica no store
	// --------------------------------------------------
	key := domain.IdempotencyKey(in.TenantID, in.Professional, start, client.ID)
	status := domain.InitialStatus(in.Confirm || pol.autoConfirm)

	for _, plan := range plans {
		ap := &models.Appointment{
			TenantID:        in.TenantID,
			ProfessionalID:  plan.professionalID,
			ClientID:        client.ID,
			ServiceID:       svc.ID,
			ScheduledAt:     start,
			EndsAt:          end,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
			Status:          string(status),
			Notes:           strings.TrimSpace(in.Notes),
			IdempotencyKey:  key,
		}

		stored, created, err := uc.repo.InsertIfNoOverlap(ctx, ap)
		if httperr.IsConflict(err) {
			continue
		}
		if err != nil {
			return nil, err
		}

		if created {
			uc.cache.InvalidateDay(ctx, in.TenantID, dateKey(start))
			uc.audit.Dispatch(audit.Event{
				TenantID: in.TenantID,
				UserID:   in.ActorID,
				Action:   "appointment_created",
				Entity:   "appointment",
				EntityID: &stored.ID,
				Metadata: map[string]any{
					"professional_id": stored.ProfessionalID,
					"selector":        in.Professional.String(),
					"scheduled_at":    stored.ScheduledAt,
				},
			})
		}

		return &BookResult{Appointment: stored, Replayed: !created}, nil
	}

	// --------------------------------------------------
	// 7️⃣ Perdeu a corrida pelo horário
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		UserID:   in.ActorID,
		Action:   "appointment_conflict",
		Entity:   "appointment",
		Metadata: map[string]any{
			"selector": in.Professional.String(),
			"start":    start,
			"end":      end,
		},
	})
	uc.log.Info("booking conflict",
		"tenant_id", in.TenantID,
		"selector", in.Professional.String(),
		"start", start,
	)

	return nil, httperr.Conflict("time_conflict")
}

func (uc *Book) resolveClient(ctx context.Context, in BookInput) (*models.Client, error) {
	if in.ClientID != 0 {
		return uc.mismatch.client(ctx, uc.repo, in.TenantID, in.ClientID)
	}

	phone := strings.TrimSpace(in.ClientPhone)
	name := strings.TrimSpace(in.ClientName)
	if phone == "" || name == "" {
		return nil, httperr.Invalid("missing_client")
	}

	return uc.repo.GetOrCreateClient(
		ctx,
		in.TenantID,
		name,
		phone,
		strings.ToLower(strings.TrimSpace(in.ClientEmail)),
	)
}

// candidates devolve os profissionais que trabalham em [start, end), na
// ordem em que a reserva deve tentar. Profissionais ocupados continuam na
// lista: o store decide, e uma repetição da mesma tentativa é reconhecida
// pela chave de idempotência antes da checagem de sobreposição.
func (uc *Book) candidates(
	ctx context.Context,
	pol *policy,
	in BookInput,
	start time.Time,
	end time.Time,
) ([]dayPlan, error) {

	if !in.Professional.IsAny() {
		p, err := uc.mismatch.professional(ctx, uc.repo, in.TenantID, in.Professional.ID())
		if err != nil {
			return nil, err
		}

		plan, err := planDay(ctx, uc.repo, uc.calendar, in.TenantID, p.ID, start)
		if err != nil {
			return nil, err
		}
		if !plan.working || !plan.day.Admits(start, end) {
			return nil, httperr.Invalid("outside_working_hours")
		}
		return []dayPlan{plan}, nil
	}

	if !pol.allowAny {
		return nil, httperr.Invalid("any_professional_not_allowed")
	}

	pros, err := uc.repo.ListActiveProfessionals(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}

	var plans []dayPlan
	for _, p := range pros {
		plan, err := planDay(ctx, uc.repo, uc.calendar, in.TenantID, p.ID, start)
		if err != nil {
			return nil, err
		}
		if plan.working && plan.day.Admits(start, end) {
			plans = append(plans, plan)
		}
	}
	if len(plans) == 0 {
		return nil, httperr.Invalid("outside_working_hours")
	}

	// livres primeiro; entre eles, menor carga e depois menor id
	sort.SliceStable(plans, func(i, j int) bool {
		fi, fj := plans[i].admits(start, end), plans[j].admits(start, end)
		if fi != fj {
			return fi
		}
		if plans[i].load() != plans[j].load() {
			return plans[i].load() < plans[j].load()
		}
		return plans[i].professionalID < plans[j].professionalID
	})

	return plans, nil
}

func outcomeOf(res *BookResult, err error) string {
	switch {
	case err == nil && res.Replayed:
		return metrics.OutcomeReplayed
	case err == nil:
		return metrics.OutcomeCreated
	case httperr.IsConflict(err):
		return metrics.OutcomeConflict
	case httperr.IsTenantMismatch(err):
		return metrics.OutcomeTenantMismatch
	case httperr.KindOf(err) != "":
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
