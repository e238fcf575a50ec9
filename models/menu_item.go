package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Category string

const (
	CategoryVeg           Category = "VEG"
	CategoryNonVeg        Category = "NON_VEG"
	CategoryVegSpecial    Category = "VEG_SPECIAL"
	CategoryNonVegSpecial Category = "NON_VEG_SPECIAL"
	CategoryExtra         Category = "EXTRA"
	CategoryGeneral       Category = "GENERAL"
)

var Categories = []Category{
	CategoryVeg, CategoryNonVeg, CategoryVegSpecial, CategoryNonVegSpecial, CategoryExtra, CategoryGeneral,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// IsComfortBox reports whether items of this category can be paid with a meal pass.
func (c Category) IsComfortBox() bool {
	return c == CategoryVeg || c == CategoryNonVeg
}

type MenuItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	NameKey     string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"-"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    Category        `gorm:"type:varchar(20);not null" json:"category"`
	IsAvailable bool            `gorm:"not null" json:"is_available"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

// MenuNameKey is the case-insensitive identity of a menu item name.
func MenuNameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (m *MenuItem) BeforeSave(tx *gorm.DB) error {
	m.NameKey = MenuNameKey(m.Name)
	return nil
}
