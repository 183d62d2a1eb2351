package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberpro-booking/internal/domain/account"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

func (r *AccountGormRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Tenant{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AccountGormRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AccountGormRepository) CreateAccount(ctx context.Context, acc *account.Account) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&acc.Tenant).Error; err != nil {
			return err
		}

		acc.User.TenantID = acc.Tenant.ID
		if err := tx.Omit("Tenant").Create(&acc.User).Error; err != nil {
			return err
		}

		acc.Settings.TenantID = acc.Tenant.ID
		if err := tx.Create(&acc.Settings).Error; err != nil {
			return err
		}

		acc.Professional.TenantID = acc.Tenant.ID
		acc.Professional.UserID = &acc.User.ID
		if err := tx.Create(&acc.Professional).Error; err != nil {
			return err
		}

		for i := range acc.Schedules {
			acc.Schedules[i].TenantID = acc.Tenant.ID
			acc.Schedules[i].ProfessionalID = acc.Professional.ID
		}
		if len(acc.Schedules) > 0 {
			if err := tx.Create(&acc.Schedules).Error; err != nil {
				return err
			}
		}

		return nil
	})

	// corrida entre dois cadastros com o mesmo slug ou e-mail
	if isUniqueViolation(err) {
		return httperr.Conflict("account_already_exists")
	}
	return err
}

func (r *AccountGormRepository) FindUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, *models.Tenant, error) {

	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Where("email = ?", email).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, account.ErrUserNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	tenant := user.Tenant
	return &user, &tenant, nil
}

var _ account.Repository = (*AccountGormRepository)(nil)
