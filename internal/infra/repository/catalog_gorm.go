package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberpro-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Tenant
// --------------------------------------------------

func (r *CatalogGormRepository) SaveTenant(ctx context.Context, tenant *models.Tenant) error {
	return r.db.WithContext(ctx).Save(tenant).Error
}

func (r *CatalogGormRepository) SaveSettings(ctx context.Context, st *models.TenantSettings) error {
	// zero e false são valores válidos aqui; Save grava todas as colunas
	return r.db.WithContext(ctx).Save(st).Error
}

// --------------------------------------------------
// Professionals
// --------------------------------------------------

func (r *CatalogGormRepository) ListProfessionals(
	ctx context.Context,
	tenantID uint,
) ([]models.Professional, error) {

	var pros []models.Professional
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("id ASC").
		Find(&pros).Error; err != nil {
		return nil, err
	}
	return pros, nil
}

func (r *CatalogGormRepository) CreateProfessional(ctx context.Context, p *models.Professional) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *CatalogGormRepository) SaveProfessional(ctx context.Context, p *models.Professional) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// --------------------------------------------------
// Schedules
// --------------------------------------------------

func (r *CatalogGormRepository) ListSchedules(
	ctx context.Context,
	professionalID uint,
) ([]models.ProfessionalSchedule, error) {

	var rows []models.ProfessionalSchedule
	if err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("day_of_week ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CatalogGormRepository) ReplaceSchedules(
	ctx context.Context,
	professionalID uint,
	rows []models.ProfessionalSchedule,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("professional_id = ?", professionalID).
			Delete(&models.ProfessionalSchedule{}).Error; err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}

		for i := range rows {
			rows[i].ID = 0
			rows[i].ProfessionalID = professionalID
		}
		return tx.Create(&rows).Error
	})
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *CatalogGormRepository) ListServices(
	ctx context.Context,
	tenantID uint,
	activeOnly bool,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *CatalogGormRepository) CreateService(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *CatalogGormRepository) SaveService(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// --------------------------------------------------
// Clients
// --------------------------------------------------

func (r *CatalogGormRepository) ListClients(
	ctx context.Context,
	tenantID uint,
	query string,
) ([]models.Client, error) {

	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)

	if query = strings.TrimSpace(query); query != "" {
		like := "%" + query + "%"
		q = q.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var clients []models.Client
	if err := q.Order("id DESC").Limit(200).Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// --------------------------------------------------
// Products
// --------------------------------------------------

func (r *CatalogGormRepository) ListProducts(
	ctx context.Context,
	tenantID uint,
	f catalog.ProductFilter,
) ([]models.Product, error) {

	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)

	if category := strings.ToLower(strings.TrimSpace(f.Category)); category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}
	if f.Active != nil {
		q = q.Where("active = ?", *f.Active)
	}
	if query := strings.ToLower(strings.TrimSpace(f.Query)); query != "" {
		like := "%" + query + "%"
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}
	if f.LowStock {
		q = q.Where("min_stock_alert > 0 AND stock_quantity <= min_stock_alert")
	}

	var products []models.Product
	if err := q.Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *CatalogGormRepository) GetProduct(ctx context.Context, productID uint) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).First(&p, productID).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *CatalogGormRepository) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *CatalogGormRepository) SaveProduct(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// --------------------------------------------------
// Cashflow
// --------------------------------------------------

func (r *CatalogGormRepository) ListCashflowCategories(
	ctx context.Context,
	tenantID uint,
) ([]models.CashflowCategory, error) {

	var rows []models.CashflowCategory
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CatalogGormRepository) GetCashflowCategory(
	ctx context.Context,
	categoryID uint,
) (*models.CashflowCategory, error) {

	var c models.CashflowCategory
	if err := r.db.WithContext(ctx).First(&c, categoryID).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *CatalogGormRepository) CreateCashflowCategory(ctx context.Context, c *models.CashflowCategory) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CatalogGormRepository) ListCashflowEntries(
	ctx context.Context,
	tenantID uint,
	from time.Time,
	to time.Time,
) ([]models.CashflowEntry, error) {

	var rows []models.CashflowEntry
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND date >= ? AND date < ?", tenantID, from, to).
		Order("date ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CatalogGormRepository) CreateCashflowEntry(ctx context.Context, e *models.CashflowEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (r *CatalogGormRepository) ListAuditLogs(
	ctx context.Context,
	tenantID uint,
	f catalog.AuditFilter,
) ([]models.AuditLog, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("tenant_id = ?", tenantID)

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Offset(f.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

var _ catalog.Repository = (*CatalogGormRepository)(nil)
