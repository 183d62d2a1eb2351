package appointment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/barberpro-booking/internal/audit"
	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
	"github.com/BruksfildServices01/barberpro-booking/internal/timezone"
)

// policy é a configuração do tenant já com os padrões aplicados.
type policy struct {
	tenant      *models.Tenant
	loc         *time.Location
	minAdvance  time.Duration
	maxAdvance  time.Duration
	granularity int
	allowAny    bool
	autoConfirm bool
}

func loadPolicy(ctx context.Context, repo domain.Repository, tenantID uint) (*policy, error) {
	tenant, err := repo.GetTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFound("tenant_not_found")
		}
		return nil, err
	}

	st, err := repo.GetSettings(ctx, tenantID)
	if errors.Is(err, domain.ErrNotFound) {
		def := models.DefaultSettings(tenantID)
		st, err = &def, nil
	}
	if err != nil {
		return nil, err
	}

	p := &policy{
		tenant:      tenant,
		loc:         timezone.Location(tenant.Timezone),
		minAdvance:  time.Duration(st.MinAdvanceHours) * time.Hour,
		maxAdvance:  time.Duration(st.MaxAdvanceDays) * 24 * time.Hour,
		granularity: st.SlotDurationMinutes,
		allowAny:    st.AllowAnyProfessional,
		autoConfirm: st.AutoConfirm,
	}
	if st.MinAdvanceHours < 0 {
		p.minAdvance = 0
	}
	if st.MaxAdvanceDays <= 0 {
		p.maxAdvance = time.Duration(models.DefaultMaxAdvanceDays) * 24 * time.Hour
	}
	if p.granularity <= 0 {
		p.granularity = models.DefaultSlotDurationMinutes
	}
	return p, nil
}

// withinAdvance aplica [now + min_advance_hours, now + max_advance_days].
func (p *policy) withinAdvance(start, now time.Time) error {
	if start.Before(now.Add(p.minAdvance)) {
		return httperr.Invalid("too_soon")
	}
	if start.After(now.Add(p.maxAdvance)) {
		return httperr.Invalid("too_far")
	}
	return nil
}

// mismatchReporter registra referências entre tenants. Nunca são corrigidas.
type mismatchReporter struct {
	log   *slog.Logger
	audit *audit.Dispatcher
}

func (m mismatchReporter) report(tenantID uint, entity string, entityID uint, ownerID uint) error {
	m.log.Error("cross-tenant reference",
		"tenant_id", tenantID,
		"entity", entity,
		"entity_id", entityID,
		"owner_tenant_id", ownerID,
	)
	if m.audit != nil {
		m.audit.Dispatch(audit.Event{
			TenantID: tenantID,
			Action:   "tenant_mismatch",
			Entity:   entity,
			EntityID: &entityID,
		})
	}
	return httperr.TenantMismatch(entity + "_tenant_mismatch")
}

func (m mismatchReporter) service(
	ctx context.Context,
	repo domain.Repository,
	tenantID uint,
	serviceID uint,
) (*models.Service, error) {

	svc, err := repo.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFound("service_not_found")
		}
		return nil, err
	}
	if svc.TenantID != tenantID {
		return nil, m.report(tenantID, "service", serviceID, svc.TenantID)
	}
	if !svc.Active {
		return nil, httperr.Invalid("service_inactive")
	}
	if svc.DurationMinutes <= 0 {
		return nil, httperr.Invalid("invalid_duration")
	}
	return svc, nil
}

func (m mismatchReporter) professional(
	ctx context.Context,
	repo domain.Repository,
	tenantID uint,
	professionalID uint,
) (*models.Professional, error) {

	p, err := repo.GetProfessional(ctx, professionalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFound("professional_not_found")
		}
		return nil, err
	}
	if p.TenantID != tenantID {
		return nil, m.report(tenantID, "professional", professionalID, p.TenantID)
	}
	if !p.Active {
		return nil, httperr.Invalid("professional_inactive")
	}
	return p, nil
}

func (m mismatchReporter) client(
	ctx context.Context,
	repo domain.Repository,
	tenantID uint,
	clientID uint,
) (*models.Client, error) {

	c, err := repo.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFound("client_not_found")
		}
		return nil, err
	}
	if c.TenantID != tenantID {
		return nil, m.report(tenantID, "client", clientID, c.TenantID)
	}
	return c, nil
}

func (m mismatchReporter) appointment(
	ctx context.Context,
	repo domain.Repository,
	tenantID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFound("appointment_not_found")
		}
		return nil, err
	}
	if ap.TenantID != tenantID {
		return nil, m.report(tenantID, "appointment", appointmentID, ap.TenantID)
	}
	return ap, nil
}

// dayBounds devolve [00:00, 00:00 do dia seguinte) no fuso de t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := timezone.StartOfDay(t)
	return start, start.AddDate(0, 0, 1)
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
