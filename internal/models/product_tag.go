package models

import "time"

// ProductTag associates a product with a tag. At most one row exists per
// (product, tag) pair; re-tagging flips IsActive instead of inserting a
// duplicate.
type ProductTag struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID   string     `json:"product_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_product_tag"`
	Product     Product    `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	TagID       string     `json:"tag_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_product_tag"`
	Tag         Tag        `json:"-" gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
	Name        string     `json:"name" gorm:"type:varchar(255)"`
	Description *string    `json:"description,omitempty" gorm:"type:varchar(500)"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
