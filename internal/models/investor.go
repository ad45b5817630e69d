package models

import (
	"time"

	"github.com/google/uuid"
)

// Investor is a capital provider admitted to one or more pools.
type Investor struct {
	InvestorID   uuid.UUID `gorm:"column:investor_id;type:uuid;primaryKey" json:"investor_id"`
	InvestorName string    `gorm:"column:investor_name;not null" json:"investor_name"`
	Email        string    `gorm:"column:email;not null" json:"email"`
	Phone        string    `gorm:"column:phone" json:"phone"`
	PanNumber    string    `gorm:"column:pan_number" json:"pan_number"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Investor) TableName() string {
	return "investors"
}
