package db

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barberpro-booking/internal/config"
	"github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

const (
	OverlapConstraint = "appointments_no_overlap"
	IdempotencyIndex  = "idx_appointments_live_idempotency"
)

func NewDB(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database ready")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Tenant{},
		&models.TenantSettings{},
		&models.User{},
		&models.Professional{},
		&models.ProfessionalSchedule{},
		&models.Service{},
		&models.Client{},
		&models.Appointment{},
		&models.AuditLog{},
		&models.Product{},
		&models.CashflowCategory{},
		&models.CashflowEntry{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	for _, stmt := range constraints() {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate constraints: %w", err)
		}
	}

	db.Exec(`
        UPDATE tenants
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return nil
}

// constraints garante no banco que dois agendamentos vivos do mesmo
// profissional nunca se sobrepõem, mesmo fora do repositório.
func constraints() []string {
	live := "'" + strings.Join(appointment.LiveStatusStrings(), "','") + "'"

	return []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,
		fmt.Sprintf(`
        DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = '%s'
            ) THEN
                ALTER TABLE appointments
                ADD CONSTRAINT %s
                EXCLUDE USING gist (
                    professional_id WITH =,
                    tstzrange(scheduled_at, ends_at, '[)') WITH &&
                ) WHERE (status IN (%s));
            END IF;
        END
        $$`, OverlapConstraint, OverlapConstraint, live),
		fmt.Sprintf(`
        CREATE UNIQUE INDEX IF NOT EXISTS %s
        ON appointments (tenant_id, idempotency_key)
        WHERE idempotency_key <> '' AND status IN (%s)`, IdempotencyIndex, live),
	}
}
