package models

import "time"

// Address is a delivery address owned by a single user. Orders reference
// an address by id; the address must belong to the ordering user.
type Address struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"index;type:varchar(36)"`
	Label     string    `json:"label" validate:"required,max=50"`
	City      string    `json:"city" validate:"required,max=100"`
	Street    string    `json:"street" validate:"required,max=255"`
	Building  string    `json:"building" validate:"omitempty,max=50"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
