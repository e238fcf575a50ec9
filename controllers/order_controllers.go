package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/mealbox-app/database"
	"github.com/yeremiapane/mealbox-app/services"
	"github.com/yeremiapane/mealbox-app/utils"
)

type OrderController struct {
	Orders *services.OrderAssembler
}

func NewOrderController(orders *services.OrderAssembler) *OrderController {
	return &OrderController{Orders: orders}
}

// CreateOrder -> price, optionally redeem a meal pass, and store one order
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.CreateOrder(c.Request.Context(), req)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByID -> detail 1 order with its lines
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := paramID(c, "order_id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	order, err := oc.Orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetAllOrders -> newest first, filtered by customer_id, status and limit
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var filter database.OrderFilter

	customerID, err := queryUint(c, "customer_id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	filter.CustomerID = customerID

	if raw := c.Query("status"); raw != "" {
		status, err := services.ParseOrderStatus(raw)
		if err != nil {
			utils.RespondAppError(c, err)
			return
		}
		filter.Status = status
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			utils.RespondAppError(c, utils.InvalidOperation("invalid limit %q", raw))
			return
		}
		filter.Limit = limit
	}

	orders, err := oc.Orders.ListOrders(c.Request.Context(), filter)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// UpdateOrderStatus -> one step of the order state machine
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, err := paramID(c, "order_id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	status, err := services.ParseOrderStatus(body.Status)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	order, err := oc.Orders.UpdateOrderStatus(c.Request.Context(), id, status)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated to "+string(order.Status), order)
}

