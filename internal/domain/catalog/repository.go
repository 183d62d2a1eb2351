package catalog

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

// Repository cobre o CRUD do painel do dono que alimenta o agendamento.
type Repository interface {
	SaveTenant(ctx context.Context, tenant *models.Tenant) error
	SaveSettings(ctx context.Context, settings *models.TenantSettings) error

	ListProfessionals(ctx context.Context, tenantID uint) ([]models.Professional, error)
	CreateProfessional(ctx context.Context, p *models.Professional) error
	SaveProfessional(ctx context.Context, p *models.Professional) error

	ListSchedules(ctx context.Context, professionalID uint) ([]models.ProfessionalSchedule, error)
	// ReplaceSchedules troca a escala inteira do profissional numa transação.
	ReplaceSchedules(
		ctx context.Context,
		professionalID uint,
		rows []models.ProfessionalSchedule,
	) error

	ListServices(ctx context.Context, tenantID uint, activeOnly bool) ([]models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	SaveService(ctx context.Context, s *models.Service) error

	ListClients(ctx context.Context, tenantID uint, query string) ([]models.Client, error)

	ListProducts(ctx context.Context, tenantID uint, f ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, productID uint) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	SaveProduct(ctx context.Context, p *models.Product) error

	ListCashflowCategories(ctx context.Context, tenantID uint) ([]models.CashflowCategory, error)
	GetCashflowCategory(ctx context.Context, categoryID uint) (*models.CashflowCategory, error)
	CreateCashflowCategory(ctx context.Context, c *models.CashflowCategory) error
	// ListCashflowEntries devolve os lançamentos com Date em [from, to).
	ListCashflowEntries(ctx context.Context, tenantID uint, from, to time.Time) ([]models.CashflowEntry, error)
	CreateCashflowEntry(ctx context.Context, e *models.CashflowEntry) error

	ListAuditLogs(ctx context.Context, tenantID uint, f AuditFilter) ([]models.AuditLog, int64, error)
}

// AuditFilter: campos vazios não filtram. From e To delimitam created_at.
type AuditFilter struct {
	Action string
	Entity string
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

// ProductFilter: Category compara sem caixa, Query procura em nome e
// descrição. Active nil traz ativos e inativos.
type ProductFilter struct {
	Category string
	Active   *bool
	Query    string
	LowStock bool
}
