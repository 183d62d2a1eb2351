package account

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// Account agrupa tudo o que nasce no cadastro de uma barbearia.
type Account struct {
	Tenant       models.Tenant
	User         models.User
	Settings     models.TenantSettings
	Professional models.Professional
	Schedules    []models.ProfessionalSchedule
}

type Repository interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)

	// CreateAccount grava o Account inteiro numa única transação e preenche
	// os ids. Falha parcial não deixa nada gravado.
	CreateAccount(ctx context.Context, acc *Account) error

	// FindUserByEmail devolve ErrUserNotFound quando o e-mail não existe.
	FindUserByEmail(ctx context.Context, email string) (*models.User, *models.Tenant, error)
}
