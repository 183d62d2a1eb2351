package account

import (
	"context"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barberpro-booking/internal/auth"
	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/account"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
	"github.com/BruksfildServices01/barberpro-booking/internal/timezone"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type RegisterInput struct {
	TenantName    string
	TenantSlug    string
	TenantPhone   string
	TenantAddress string
	Timezone      string

	Name     string
	Email    string
	Password string
	Phone    string
}

type Session struct {
	User   models.User
	Tenant models.Tenant
	Token  string
}

// Register cria a barbearia pronta para receber agendamentos: tenant, dono,
// configurações padrão e o dono como primeiro profissional.
type Register struct {
	repo        domain.Repository
	secret      string
	clock       timezone.Clock
	emailDomain func(email string) bool
}

func NewRegister(
	repo domain.Repository,
	secret string,
	clock timezone.Clock,
	emailDomain func(string) bool,
) *Register {
	if clock == nil {
		clock = timezone.SystemClock
	}
	if emailDomain == nil {
		emailDomain = func(string) bool { return true }
	}
	return &Register{repo: repo, secret: secret, clock: clock, emailDomain: emailDomain}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*Session, error) {

	slug := strings.ToLower(strings.TrimSpace(in.TenantSlug))
	if !slugPattern.MatchString(slug) {
		return nil, httperr.Invalid("invalid_slug")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !uc.emailDomain(email) {
		return nil, httperr.Invalid("invalid_email_domain")
	}

	tz := strings.TrimSpace(in.Timezone)
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		return nil, httperr.Invalid("invalid_timezone")
	}

	if exists, err := uc.repo.SlugExists(ctx, slug); err != nil {
		return nil, err
	} else if exists {
		return nil, httperr.Conflict("slug_already_exists")
	}

	if exists, err := uc.repo.EmailExists(ctx, email); err != nil {
		return nil, err
	} else if exists {
		return nil, httperr.Conflict("email_already_exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	acc := &domain.Account{
		Tenant: models.Tenant{
			Name:     strings.TrimSpace(in.TenantName),
			Slug:     slug,
			Phone:    in.TenantPhone,
			Address:  in.TenantAddress,
			Timezone: tz,
		},
		User: models.User{
			Name:         strings.TrimSpace(in.Name),
			Email:        email,
			PasswordHash: string(hashed),
			Phone:        in.Phone,
			Role:         models.RoleOwner,
		},
		Settings: models.DefaultSettings(0),
		Professional: models.Professional{
			Name:   strings.TrimSpace(in.Name),
			Email:  email,
			Phone:  in.Phone,
			Active: true,
		},
		Schedules: DefaultSchedules(),
	}

	if err := uc.repo.CreateAccount(ctx, acc); err != nil {
		return nil, err
	}

	token, err := auth.Issue(uc.secret, auth.Claims{
		UserID:   acc.User.ID,
		TenantID: acc.Tenant.ID,
		Role:     acc.User.Role,
	}, uc.clock())
	if err != nil {
		return nil, err
	}

	return &Session{User: acc.User, Tenant: acc.Tenant, Token: token}, nil
}

// DefaultSchedules: segunda a sexta 09:00–19:00, sábado 09:00–17:00,
// domingo de folga.
func DefaultSchedules() []models.ProfessionalSchedule {
	rows := make([]models.ProfessionalSchedule, 0, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		row := models.ProfessionalSchedule{DayOfWeek: int(day)}
		switch day {
		case time.Sunday:
			row.IsDayOff = true
		case time.Saturday:
			row.StartTime, row.EndTime = "09:00", "17:00"
		default:
			row.StartTime, row.EndTime = "09:00", "19:00"
		}
		rows = append(rows, row)
	}
	return rows
}
