package models

import "time"

// Tenant é uma barbearia: a unidade de isolamento de todos os dados.
type Tenant struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone    string `gorm:"size:20" json:"phone"`
	WhatsApp string `gorm:"size:20" json:"whatsapp"`
	Address  string `gorm:"size:255" json:"address"`
	Timezone string `gorm:"size:64;default:'America/Sao_Paulo'" json:"timezone"`
	LogoURL  string `gorm:"size:255" json:"logo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TenantSettings struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"uniqueIndex;not null" json:"tenant_id"`

	MinAdvanceHours      int  `gorm:"default:2" json:"min_advance_hours"`
	MaxAdvanceDays       int  `gorm:"default:30" json:"max_advance_days"`
	SlotDurationMinutes  int  `gorm:"default:30" json:"slot_duration_minutes"`
	AllowAnyProfessional bool `gorm:"default:true" json:"allow_any_professional"`
	AutoConfirm          bool `gorm:"default:false" json:"auto_confirm"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	DefaultMinAdvanceHours     = 2
	DefaultMaxAdvanceDays      = 30
	DefaultSlotDurationMinutes = 30
)

// DefaultSettings são as configurações criadas junto com o tenant.
func DefaultSettings(tenantID uint) TenantSettings {
	return TenantSettings{
		TenantID:             tenantID,
		MinAdvanceHours:      DefaultMinAdvanceHours,
		MaxAdvanceDays:       DefaultMaxAdvanceDays,
		SlotDurationMinutes:  DefaultSlotDurationMinutes,
		AllowAnyProfessional: true,
	}
}
