package models

import "time"

const (
	CashflowIncome  = "income"
	CashflowExpense = "expense"
)

type CashflowCategory struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID uint   `gorm:"index;not null" json:"tenant_id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Type     string `gorm:"size:10;not null" json:"type"`

	CreatedAt time.Time `json:"created_at"`
}

// CashflowEntry é um lançamento manual no caixa. AppointmentID liga a
// entrada ao atendimento que a gerou, quando houver.
type CashflowEntry struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index;not null" json:"tenant_id"`

	Type          string    `gorm:"size:10;not null" json:"type"`
	Amount        float64   `gorm:"not null" json:"amount"`
	Date          time.Time `gorm:"index;not null" json:"date"`
	Description   string    `gorm:"size:255" json:"description"`
	PaymentMethod string    `gorm:"size:30" json:"payment_method"`

	CategoryID    *uint `gorm:"index" json:"category_id,omitempty"`
	AppointmentID *uint `gorm:"index" json:"appointment_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
