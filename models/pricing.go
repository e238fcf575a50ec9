package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pricing is a named box-type tier such as "veg_comfort".
type Pricing struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	BoxType     string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"box_type"`
	DisplayName string          `gorm:"type:varchar(255);not null" json:"display_name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	IsActive    bool            `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

func (Pricing) TableName() string { return "pricing" }
