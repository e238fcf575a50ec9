package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/mealbox-app/services"
	"github.com/yeremiapane/mealbox-app/utils"
)

type MealPassController struct {
	Ledger *services.MealPassLedger
}

func NewMealPassController(ledger *services.MealPassLedger) *MealPassController {
	return &MealPassController{Ledger: ledger}
}

func (mc *MealPassController) CreateMealPass(c *gin.Context) {
	var req services.CreateMealPassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	pass, err := mc.Ledger.CreatePass(c.Request.Context(), req)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Meal pass created", pass)
}

func (mc *MealPassController) GetMealPass(c *gin.Context) {
	id, err := paramID(c, "pass_id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	pass, err := mc.Ledger.GetPass(c.Request.Context(), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Meal pass detail", gin.H{
		"meal_pass":       pass,
		"meals_remaining": pass.MealsRemaining(),
	})
}

// GetCustomerMealPasses -> every pass of one customer, oldest first
func (mc *MealPassController) GetCustomerMealPasses(c *gin.Context) {
	id, err := paramID(c, "customer_id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	passes, err := mc.Ledger.ListForCustomer(c.Request.Context(), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of meal passes", passes)
}

// RedeemMealPass -> use meals without placing an order
func (mc *MealPassController) RedeemMealPass(c *gin.Context) {
	id, err := paramID(c, "pass_id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var body struct {
		MealsToUse int `json:"meals_to_use" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	pass, err := mc.Ledger.Redeem(c.Request.Context(), id, body.MealsToUse)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Meal pass redeemed", pass)
}

// AdjustMealPass -> admin correction of totals, usage or active flag
func (mc *MealPassController) AdjustMealPass(c *gin.Context) {
	id, err := paramID(c, "pass_id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var req services.AdjustMealPassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	pass, err := mc.Ledger.Adjust(c.Request.Context(), id, req)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Meal pass updated", pass)
}
