package models

import "time"

// User represents a registered account on the marketplace.
type User struct {
	ID             string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username       string     `json:"username" gorm:"uniqueIndex;type:varchar(100);not null" validate:"required,min=3,max=100"`
	Name           string     `json:"name" gorm:"type:varchar(255)"`
	Address        string     `json:"address" gorm:"type:varchar(255)"`
	Zipcode        string     `json:"zipcode" gorm:"type:varchar(20)"`
	City           string     `json:"city" gorm:"type:varchar(100)"`
	State          string     `json:"state" gorm:"type:varchar(100)"`
	Country        string     `json:"country" gorm:"type:varchar(100)"`
	BillingName    string     `json:"billing_name" gorm:"type:varchar(255)"`
	BillingAccount string     `json:"billing_account" gorm:"type:varchar(100)"`
	Password       string     `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash, never plaintext
	Email          string     `json:"email" gorm:"uniqueIndex;type:varchar(255);not null" validate:"required,email"`
	Admin          bool       `json:"admin" gorm:"default:false"`
	CreatedByID    *string    `json:"created_by,omitempty" gorm:"type:varchar(36)"`
	CreatedBy      *User      `json:"-" gorm:"foreignKey:CreatedByID"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// UserUpdate is the allow-listed set of mutable user fields.
// Nil fields are left untouched.
type UserUpdate struct {
	Name           *string `json:"name,omitempty"`
	Address        *string `json:"address,omitempty"`
	Zipcode        *string `json:"zipcode,omitempty"`
	City           *string `json:"city,omitempty"`
	State          *string `json:"state,omitempty"`
	Country        *string `json:"country,omitempty"`
	BillingName    *string `json:"billing_name,omitempty"`
	BillingAccount *string `json:"billing_account,omitempty"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
}
