package models

import "time"

// Product é item de venda no balcão. Não entra na agenda.
type Product struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index;not null" json:"tenant_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Category    string `gorm:"size:50;index" json:"category"`
	SKU         string `gorm:"size:50" json:"sku"`
	ImageURL    string `gorm:"size:255" json:"image_url"`

	SalePrice float64 `json:"sale_price"`
	CostPrice float64 `json:"cost_price"`

	StockQuantity int `gorm:"not null;default:0" json:"stock_quantity"`
	MinStockAlert int `gorm:"not null;default:0" json:"min_stock_alert"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LowStock: estoque no limite de alerta ou abaixo dele.
func (p Product) LowStock() bool {
	return p.MinStockAlert > 0 && p.StockQuantity <= p.MinStockAlert
}
