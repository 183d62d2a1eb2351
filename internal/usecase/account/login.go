package account

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barberpro-booking/internal/auth"
	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/account"
	"github.com/BruksfildServices01/barberpro-booking/internal/timezone"
)

var ErrInvalidCredentials = errors.New("invalid_credentials")

type Login struct {
	repo   domain.Repository
	secret string
	clock  timezone.Clock
}

func NewLogin(repo domain.Repository, secret string, clock timezone.Clock) *Login {
	if clock == nil {
		clock = timezone.SystemClock
	}
	return &Login{repo: repo, secret: secret, clock: clock}
}

func (uc *Login) Execute(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, tenant, err := uc.repo.FindUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.Issue(uc.secret, auth.Claims{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Role:     user.Role,
	}, uc.clock())
	if err != nil {
		return nil, err
	}

	return &Session{User: *user, Tenant: *tenant, Token: token}, nil
}
