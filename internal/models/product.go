package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
type Product struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name            string          `json:"name" gorm:"uniqueIndex;type:varchar(255);not null" validate:"required,min=1,max=255"`
	Description     string          `json:"description" gorm:"type:varchar(1000);not null" validate:"required,min=1,max=1000"`
	PricePerUnit    decimal.Decimal `json:"price_per_unit" gorm:"type:decimal(10,2);not null"`
	QuantityInStock int             `json:"quantity_in_stock" gorm:"not null" validate:"gte=0"`
	IsActive        bool            `json:"is_active" gorm:"default:true"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
}

// ProductUpdate is the allow-listed set of mutable product fields.
type ProductUpdate struct {
	Name            *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description     *string          `json:"description,omitempty" validate:"omitempty,min=1,max=1000"`
	PricePerUnit    *decimal.Decimal `json:"price_per_unit,omitempty"`
	QuantityInStock *int             `json:"quantity_in_stock,omitempty" validate:"omitempty,gte=0"`
	IsActive        *bool            `json:"is_active,omitempty"`
}
