package models

import "time"

type Professional struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	TenantID uint  `gorm:"index;not null" json:"tenant_id"`
	UserID   *uint `json:"user_id"`

	Name              string  `gorm:"size:100;not null" json:"name"`
	Email             string  `gorm:"size:100" json:"email"`
	Phone             string  `gorm:"size:20" json:"phone"`
	Bio               string  `gorm:"size:255" json:"bio"`
	CommissionPercent float64 `json:"commission_percent"`
	AvatarURL         string  `gorm:"size:255" json:"avatar_url"`
	Active            bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfessionalSchedule é uma linha por (profissional, dia da semana).
// Horários em "HH:MM", no fuso do tenant.
type ProfessionalSchedule struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	TenantID       uint `gorm:"index;not null" json:"tenant_id"`
	ProfessionalID uint `gorm:"uniqueIndex:idx_schedule_professional_day;not null" json:"professional_id"`
	DayOfWeek      int  `gorm:"uniqueIndex:idx_schedule_professional_day;not null" json:"day_of_week"`

	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	BreakStart string `gorm:"size:5" json:"break_start"`
	BreakEnd   string `gorm:"size:5" json:"break_end"`
	IsDayOff   bool   `json:"is_day_off"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
