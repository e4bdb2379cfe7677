package models

import "time"

// UserProduct tracks a product a user owns. One row per (user, product);
// acquiring the same product again increments Quantity on the existing row.
type UserProduct struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string     `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_user_product"`
	User        User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ProductID   string     `json:"product_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_user_product"`
	Product     Product    `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity    int        `json:"quantity" gorm:"not null" validate:"gt=0"`
	Description *string    `json:"description,omitempty" gorm:"type:varchar(500)"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
