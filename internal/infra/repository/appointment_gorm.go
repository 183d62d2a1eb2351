package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Tenant
// --------------------------------------------------

func (r *AppointmentGormRepository) GetTenant(
	ctx context.Context,
	tenantID uint,
) (*models.Tenant, error) {

	var tenant models.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, tenantID).Error; err != nil {
		return nil, notFound(err)
	}
	return &tenant, nil
}

func (r *AppointmentGormRepository) GetTenantBySlug(
	ctx context.Context,
	slug string,
) (*models.Tenant, error) {

	var tenant models.Tenant
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&tenant).Error; err != nil {
		return nil, notFound(err)
	}
	return &tenant, nil
}

func (r *AppointmentGormRepository) GetSettings(
	ctx context.Context,
	tenantID uint,
) (*models.TenantSettings, error) {

	var st models.TenantSettings
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&st).Error; err != nil {
		return nil, notFound(err)
	}
	return &st, nil
}

// --------------------------------------------------
// Catálogo
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, serviceID).Error; err != nil {
		return nil, notFound(err)
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetProfessional(
	ctx context.Context,
	professionalID uint,
) (*models.Professional, error) {

	var p models.Professional
	if err := r.db.WithContext(ctx).First(&p, professionalID).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *AppointmentGormRepository) ListActiveProfessionals(
	ctx context.Context,
	tenantID uint,
) ([]models.Professional, error) {

	var pros []models.Professional
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("id ASC").
		Find(&pros).Error; err != nil {
		return nil, err
	}
	return pros, nil
}

// --------------------------------------------------
// Escala
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSchedule(
	ctx context.Context,
	professionalID uint,
	weekday int,
) (*models.ProfessionalSchedule, error) {

	var row models.ProfessionalSchedule
	err := r.db.WithContext(ctx).
		Where("professional_id = ? AND day_of_week = ?", professionalID, weekday).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, clientID).Error; err != nil {
		return nil, notFound(err)
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	tenantID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	client := models.Client{
		TenantID: tenantID,
		Name:     name,
		Phone:    phone,
		Email:    email,
	}

	// duas reservas simultâneas do mesmo telefone: a segunda lê o que a
	// primeira gravou
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&client).Error; err != nil {
		return nil, err
	}

	if client.ID != 0 {
		return &client, nil
	}

	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND phone = ?", tenantID, phone).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Appointment store
// --------------------------------------------------

func liveScope(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", domain.LiveStatusStrings())
}

func findLiveByKey(tx *gorm.DB, tenantID uint, key string) (*models.Appointment, error) {
	var ap models.Appointment
	err := tx.Scopes(liveScope).
		Where("tenant_id = ? AND idempotency_key = ?", tenantID, key).
		First(&ap).Error
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func hasOverlap(tx *gorm.DB, ap *models.Appointment, skipID uint) (bool, error) {
	q := tx.Model(&models.Appointment{}).
		Scopes(liveScope).
		Where(
			"professional_id = ? AND scheduled_at < ? AND ends_at > ?",
			ap.ProfessionalID,
			ap.EndsAt,
			ap.ScheduledAt,
		)
	if skipID != 0 {
		q = q.Where("id <> ?", skipID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// lockProfessional serializa escritas na agenda do profissional até o fim
// da transação.
func lockProfessional(tx *gorm.DB, professionalID uint) error {
	var p models.Professional
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&p, professionalID).Error
}

func (r *AppointmentGormRepository) InsertIfNoOverlap(
	ctx context.Context,
	ap *models.Appointment,
) (*models.Appointment, bool, error) {

	var (
		stored  *models.Appointment
		created bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProfessional(tx, ap.ProfessionalID); err != nil {
			return notFound(err)
		}

		if ap.IdempotencyKey != "" {
			existing, err := findLiveByKey(tx, ap.TenantID, ap.IdempotencyKey)
			if err == nil {
				stored = existing
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		overlap, err := hasOverlap(tx, ap, 0)
		if err != nil {
			return err
		}
		if overlap {
			return httperr.Conflict("time_conflict")
		}

		row := *ap
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return err
		}
		stored, created = &row, true
		return nil
	})

	if err == nil {
		return stored, created, nil
	}

	return mapInsertError(err, func() (*models.Appointment, error) {
		return findLiveByKey(r.db.WithContext(ctx), ap.TenantID, ap.IdempotencyKey)
	})
}

// mapInsertError traduz o que o Postgres barrou depois do check da
// transação: a exclusion constraint vira conflito e o índice de
// idempotência vira replay do agendamento que venceu a corrida.
func mapInsertError(
	err error,
	replay func() (*models.Appointment, error),
) (*models.Appointment, bool, error) {
	switch {
	case isOverlapViolation(err):
		return nil, false, httperr.Conflict("time_conflict")
	case isIdempotencyViolation(err):
		existing, lookupErr := replay()
		if lookupErr != nil {
			return nil, false, httperr.Conflict("time_conflict")
		}
		return existing, false, nil
	default:
		return nil, false, err
	}
}

func (r *AppointmentGormRepository) FindByProfessionalAndDateRange(
	ctx context.Context,
	tenantID uint,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Scopes(liveScope).
		Select("id", "professional_id", "scheduled_at", "ends_at", "status").
		Where(
			"tenant_id = ? AND professional_id = ? AND scheduled_at < ? AND ends_at > ?",
			tenantID, professionalID, end, start,
		).
		Order("scheduled_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, appointmentID).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

func updateStatus(tx *gorm.DB, ap *models.Appointment, from domain.Status) error {
	res := tx.Model(&models.Appointment{}).
		Where("id = ? AND tenant_id = ? AND status = ?", ap.ID, ap.TenantID, string(from)).
		Updates(map[string]any{
			"status":       ap.Status,
			"cancelled_at": ap.CancelledAt,
			"completed_at": ap.CompletedAt,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.Conflict("status_changed")
	}
	return nil
}

func (r *AppointmentGormRepository) UpdateStatus(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {
	return updateStatus(r.db.WithContext(ctx), ap, from)
}

func (r *AppointmentGormRepository) Reschedule(
	ctx context.Context,
	old *models.Appointment,
	from domain.Status,
	next *models.Appointment,
) (*models.Appointment, error) {

	var stored models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProfessional(tx, next.ProfessionalID); err != nil {
			return notFound(err)
		}

		if err := updateStatus(tx, old, from); err != nil {
			return err
		}

		overlap, err := hasOverlap(tx, next, old.ID)
		if err != nil {
			return err
		}
		if overlap {
			return httperr.Conflict("time_conflict")
		}

		stored = *next
		return tx.Omit(clause.Associations).Create(&stored).Error
	})

	if isOverlapViolation(err) || isIdempotencyViolation(err) {
		return nil, httperr.Conflict("time_conflict")
	}
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	tenantID uint,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Professional").
		Where(
			"tenant_id = ? AND scheduled_at >= ? AND scheduled_at < ?",
			tenantID,
			start,
			end,
		)
	if professionalID != 0 {
		q = q.Where("professional_id = ?", professionalID)
	}

	var apps []models.Appointment
	if err := q.Order("scheduled_at ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
