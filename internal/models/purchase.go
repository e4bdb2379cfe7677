package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is a ledger entry for a completed sale. Amount is computed once,
// at unit price × quantity when the purchase is made, and never recomputed.
type Purchase struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	BuyerID     string          `json:"buyer_id" gorm:"type:varchar(36);not null;index"`
	Buyer       User            `json:"-" gorm:"foreignKey:BuyerID"`
	SellerID    *string         `json:"seller_id,omitempty" gorm:"type:varchar(36);index"`
	Seller      *User           `json:"-" gorm:"foreignKey:SellerID"`
	ProductID   string          `json:"product_id" gorm:"type:varchar(36);not null;index"`
	Product     Product         `json:"-" gorm:"foreignKey:ProductID"`
	Quantity    int             `json:"quantity" gorm:"not null" validate:"required,gt=0"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Description string          `json:"description" gorm:"type:varchar(255)"`
	Category    string          `json:"category" gorm:"type:varchar(100)"`
	Account     string          `json:"account" gorm:"type:varchar(100)"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}
