package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/mealbox-app/services"
	"github.com/yeremiapane/mealbox-app/utils"
)

type PricingController struct {
	Catalog *services.PriceCatalog
}

func NewPricingController(catalog *services.PriceCatalog) *PricingController {
	return &PricingController{Catalog: catalog}
}

func (pc *PricingController) GetAllPricing(c *gin.Context) {
	list, err := pc.Catalog.ListPricing(c.Request.Context())
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of pricing", list)
}

func (pc *PricingController) GetPricing(c *gin.Context) {
	p, err := pc.Catalog.GetPricingByBoxType(c.Request.Context(), c.Param("box_type"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pricing detail", p)
}

// SavePricing -> upsert a box tier and sync the matching menu item price
func (pc *PricingController) SavePricing(c *gin.Context) {
	var req services.SavePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	p, err := pc.Catalog.SavePricing(c.Request.Context(), req)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pricing saved", p)
}
