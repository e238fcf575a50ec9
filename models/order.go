package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending          OrderStatus = "pending"
	OrderStatusConfirmed        OrderStatus = "confirmed"
	OrderStatusInPreparation    OrderStatus = "in_preparation"
	OrderStatusReadyForDelivery OrderStatus = "ready_for_delivery"
	OrderStatusOutForDelivery   OrderStatus = "out_for_delivery"
	OrderStatusDelivered        OrderStatus = "delivered"
	OrderStatusCancelled        OrderStatus = "cancelled"
)

type Order struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	OrderNumber    string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"order_number"`
	CustomerID     uint            `gorm:"not null;index" json:"customer_id"`
	Customer       *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	BuildingNumber string          `gorm:"type:varchar(255)" json:"building_number"`
	Comments       string          `gorm:"type:text" json:"comments"`
	Status         OrderStatus     `gorm:"type:varchar(30);not null;index" json:"status"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount_amount"`
	MealPassID     *uint           `gorm:"index" json:"meal_pass_id,omitempty"`
	OrderDate      time.Time       `gorm:"not null;index" json:"order_date"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	Extras         []OrderExtra    `gorm:"foreignKey:OrderID" json:"extras"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null" json:"updated_at"`
}

// Subtotal is the pre-discount sum of every line.
func (o *Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.LineTotal())
	}
	for _, ex := range o.Extras {
		sum = sum.Add(ex.LineTotal())
	}
	return sum
}
