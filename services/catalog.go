package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/mealbox-app/database"
	"github.com/yeremiapane/mealbox-app/models"
	"github.com/yeremiapane/mealbox-app/utils"
)

// PriceCatalog is the read side of menu pricing plus the admin operations
// that change it.
type PriceCatalog struct {
	repo database.Repository
}

func NewPriceCatalog(repo database.Repository) *PriceCatalog {
	return &PriceCatalog{repo: repo}
}

func (c *PriceCatalog) GetMenuItemsByIDs(ctx context.Context, ids []uint) ([]models.MenuItem, error) {
	return c.repo.GetMenuItemsByIDs(ctx, ids)
}

func (c *PriceCatalog) GetPricingByBoxType(ctx context.Context, boxType string) (*models.Pricing, error) {
	return c.repo.GetPricingByBoxType(ctx, strings.TrimSpace(boxType))
}

func (c *PriceCatalog) GetMenuItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	return c.repo.GetMenuItem(ctx, id)
}

func (c *PriceCatalog) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return c.repo.ListMenuItems(ctx)
}

func (c *PriceCatalog) ListPricing(ctx context.Context) ([]models.Pricing, error) {
	return c.repo.ListPricing(ctx)
}

// resolveByID loads every distinct id in one query and fails with NotFound
// naming all ids that do not exist.
func (c *PriceCatalog) resolveByID(ctx context.Context, ids []uint) (map[uint]models.MenuItem, error) {
	seen := make(map[uint]bool, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	items, err := c.repo.GetMenuItemsByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.MenuItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	var missing []uint
	for _, id := range unique {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, utils.NotFound("menu items not found: %v", missing)
	}
	return byID, nil
}

type CreateMenuItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    models.Category `json:"category"`
	IsAvailable *bool           `json:"is_available"`
}

func (c *PriceCatalog) CreateMenuItem(ctx context.Context, req CreateMenuItemRequest) (*models.MenuItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, utils.InvalidOperation("menu item name is required")
	}
	if req.Price.IsNegative() {
		return nil, utils.InvalidOperation("price must not be negative")
	}
	category := req.Category
	if category == "" {
		category = models.CategoryGeneral
	}
	if !category.Valid() {
		return nil, utils.InvalidOperation("unknown category %q", category)
	}

	item := &models.MenuItem{
		Name:        name,
		Description: req.Description,
		Price:       req.Price,
		Category:    category,
		IsAvailable: req.IsAvailable == nil || *req.IsAvailable,
	}
	if err := c.repo.CreateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	utils.InfoLogger.WithFields(logrus.Fields{"menu_item_id": item.ID, "name": item.Name}).Info("Menu item created")
	return item, nil
}

type UpdateMenuItemRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *models.Category `json:"category"`
	IsAvailable *bool            `json:"is_available"`
}

// UpdateMenuItem changes catalog data only. Orders keep their own price
// snapshots and are never touched.
func (c *PriceCatalog) UpdateMenuItem(ctx context.Context, id uint, req UpdateMenuItemRequest) (*models.MenuItem, error) {
	item, err := c.repo.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, utils.InvalidOperation("menu item name is required")
		}
		item.Name = name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, utils.InvalidOperation("price must not be negative")
		}
		item.Price = *req.Price
	}
	if req.Category != nil {
		if !req.Category.Valid() {
			return nil, utils.InvalidOperation("unknown category %q", *req.Category)
		}
		item.Category = *req.Category
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := c.repo.UpdateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

type SavePricingRequest struct {
	BoxType     string          `json:"box_type" binding:"required"`
	DisplayName string          `json:"display_name" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	IsActive    *bool           `json:"is_active"`
}

// SavePricing upserts a box-type tier and copies its price onto the menu
// item carrying the same display name, if there is one.
func (c *PriceCatalog) SavePricing(ctx context.Context, req SavePricingRequest) (*models.Pricing, error) {
	boxType := strings.TrimSpace(req.BoxType)
	displayName := strings.TrimSpace(req.DisplayName)
	if boxType == "" || displayName == "" {
		return nil, utils.InvalidOperation("box type and display name are required")
	}
	if req.Price.IsNegative() {
		return nil, utils.InvalidOperation("price must not be negative")
	}

	var saved *models.Pricing
	err := c.repo.Transaction(ctx, func(tx database.Repository) error {
		pricing, err := tx.GetPricingByBoxType(ctx, boxType)
		switch {
		case database.IsNotFound(err):
			pricing = &models.Pricing{BoxType: boxType, IsActive: true}
		case err != nil:
			return err
		}

		pricing.DisplayName = displayName
		pricing.Price = req.Price
		if req.IsActive != nil {
			pricing.IsActive = *req.IsActive
		}
		if err := tx.SavePricing(ctx, pricing); err != nil {
			return err
		}

		item, err := tx.FindMenuItemByName(ctx, displayName)
		switch {
		case database.IsNotFound(err):
		case err != nil:
			return err
		case !item.Price.Equal(pricing.Price):
			item.Price = pricing.Price
			if err := tx.UpdateMenuItem(ctx, item); err != nil {
				return err
			}
			utils.InfoLogger.WithFields(logrus.Fields{
				"box_type":     boxType,
				"menu_item_id": item.ID,
				"price":        item.Price.StringFixed(2),
			}).Info("Menu item price synced from pricing")
		}
		saved = pricing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}
