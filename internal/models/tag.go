package models

import "time"

// Tag labels products. Tags form a tree through the optional parent
// reference; cycle checks happen in the tag service before a parent is
// assigned.
type Tag struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string     `json:"name" gorm:"uniqueIndex;type:varchar(100);not null" validate:"required,min=1,max=100"`
	Description *string    `json:"description,omitempty" gorm:"type:varchar(500)"`
	Color       *string    `json:"color,omitempty" gorm:"type:varchar(20)"`
	ParentID    *string    `json:"parent_id,omitempty" gorm:"type:varchar(36)"`
	Parent      *Tag       `json:"-" gorm:"foreignKey:ParentID"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// TagUpdate is the allow-listed set of mutable tag fields.
type TagUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}
