package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/barberpro-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

// ErrNotFound é devolvido pelos repositórios quando o registro não existe.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	schedule.Source

	// -------- Tenant --------
	GetTenant(ctx context.Context, tenantID uint) (*models.Tenant, error)
	GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	GetSettings(ctx context.Context, tenantID uint) (*models.TenantSettings, error)

	// -------- Catálogo --------
	// Buscas por id não filtram tenant: o chamador compara e acusa TenantMismatch.
	GetService(ctx context.Context, serviceID uint) (*models.Service, error)
	GetProfessional(ctx context.Context, professionalID uint) (*models.Professional, error)
	ListActiveProfessionals(ctx context.Context, tenantID uint) ([]models.Professional, error)

	// -------- Client --------
	GetClient(ctx context.Context, clientID uint) (*models.Client, error)
	GetOrCreateClient(
		ctx context.Context,
		tenantID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment store --------

	// InsertIfNoOverlap grava ap se nenhum agendamento vivo do mesmo
	// profissional intercepta [ScheduledAt, EndsAt), verificação e inserção
	// na mesma unidade atômica. Se já existe agendamento vivo com a mesma
	// IdempotencyKey, devolve esse agendamento e created=false.
	// Sobreposição devolve httperr.Conflict("time_conflict").
	InsertIfNoOverlap(
		ctx context.Context,
		ap *models.Appointment,
	) (stored *models.Appointment, created bool, err error)

	// FindByProfessionalAndDateRange lista agendamentos vivos do profissional
	// que interceptam [start, end), em ordem de início.
	FindByProfessionalAndDateRange(
		ctx context.Context,
		tenantID uint,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	GetAppointment(ctx context.Context, appointmentID uint) (*models.Appointment, error)

	// UpdateStatus grava o status de ap somente se o status atual ainda for from.
	UpdateStatus(ctx context.Context, ap *models.Appointment, from Status) error

	// Reschedule cancela old (status atual from) e insere next numa única
	// transação. Em conflito nada muda.
	Reschedule(
		ctx context.Context,
		old *models.Appointment,
		from Status,
		next *models.Appointment,
	) (*models.Appointment, error)

	// ListAppointmentsForPeriod lista todos os status, com Client e Service.
	// professionalID 0 lista o tenant inteiro.
	ListAppointmentsForPeriod(
		ctx context.Context,
		tenantID uint,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
