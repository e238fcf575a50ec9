package models

import "time"

type MealPass struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	CustomerID uint       `gorm:"not null;index" json:"customer_id"`
	TotalMeals int        `gorm:"not null" json:"total_meals"`
	MealsUsed  int        `gorm:"not null" json:"meals_used"`
	IsActive   bool       `gorm:"not null" json:"is_active"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updated_at"`
}

func (p *MealPass) MealsRemaining() int {
	return p.TotalMeals - p.MealsUsed
}
