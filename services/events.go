package services

import "github.com/yeremiapane/mealbox-app/models"

// OrderEvents receives notifications after an order change is committed.
type OrderEvents interface {
	OrderCreated(order models.Order)
	OrderStatusChanged(order models.Order)
}

type noopEvents struct{}

func (noopEvents) OrderCreated(models.Order)       {}
func (noopEvents) OrderStatusChanged(models.Order) {}
