package services

import (
	"strings"

	"github.com/yeremiapane/mealbox-app/models"
	"github.com/yeremiapane/mealbox-app/utils"
)

// orderTransitions lists the forward step of each non-terminal status.
// Cancelled is reachable from all of them.
var orderTransitions = map[models.OrderStatus]models.OrderStatus{
	models.OrderStatusPending:          models.OrderStatusConfirmed,
	models.OrderStatusConfirmed:        models.OrderStatusInPreparation,
	models.OrderStatusInPreparation:    models.OrderStatusReadyForDelivery,
	models.OrderStatusReadyForDelivery: models.OrderStatusOutForDelivery,
	models.OrderStatusOutForDelivery:   models.OrderStatusDelivered,
}

var allOrderStatuses = []models.OrderStatus{
	models.OrderStatusPending,
	models.OrderStatusConfirmed,
	models.OrderStatusInPreparation,
	models.OrderStatusReadyForDelivery,
	models.OrderStatusOutForDelivery,
	models.OrderStatusDelivered,
	models.OrderStatusCancelled,
}

func IsTerminalStatus(s models.OrderStatus) bool {
	return s == models.OrderStatusDelivered || s == models.OrderStatusCancelled
}

func CanTransition(from, to models.OrderStatus) bool {
	if IsTerminalStatus(from) {
		return false
	}
	if to == models.OrderStatusCancelled {
		_, known := orderTransitions[from]
		return known
	}
	next, ok := orderTransitions[from]
	return ok && next == to
}

func ParseOrderStatus(raw string) (models.OrderStatus, error) {
	s := models.OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range allOrderStatuses {
		if s == known {
			return s, nil
		}
	}
	return "", utils.InvalidOperation("unknown order status %q", raw)
}
