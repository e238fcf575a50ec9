package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/mealbox-app/services"
	"github.com/yeremiapane/mealbox-app/utils"
)

type MenuController struct {
	Catalog *services.PriceCatalog
}

func NewMenuController(catalog *services.PriceCatalog) *MenuController {
	return &MenuController{Catalog: catalog}
}

// GetAllMenus
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	items, err := mc.Catalog.ListMenuItems(c.Request.Context())
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", items)
}

// GetMenuByID
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	id, err := paramID(c, "menu_id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	item, err := mc.Catalog.GetMenuItem(c.Request.Context(), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", item)
}

// CreateMenu
func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req services.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := mc.Catalog.CreateMenuItem(c.Request.Context(), req)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu created", item)
}

// UpdateMenu -> partial update; existing orders keep their prices
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	id, err := paramID(c, "menu_id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var req services.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := mc.Catalog.UpdateMenuItem(c.Request.Context(), id, req)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu updated", item)
}
