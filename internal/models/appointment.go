package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TenantID uint `gorm:"index;not null" json:"tenant_id"`

	ProfessionalID uint         `gorm:"index;not null" json:"professional_id"`
	Professional   Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	ClientID uint   `gorm:"index;not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	ScheduledAt     time.Time `gorm:"not null;index" json:"scheduled_at"`
	EndsAt          time.Time `gorm:"not null" json:"ends_at"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	Price           float64   `json:"price"`

	Status         string `gorm:"size:20;default:'pending';not null" json:"status"`
	Notes          string `gorm:"size:255" json:"notes"`
	IdempotencyKey string `gorm:"size:64" json:"-"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
