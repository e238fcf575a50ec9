package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/mealbox-app/database"
	"github.com/yeremiapane/mealbox-app/models"
	"github.com/yeremiapane/mealbox-app/utils"
)

// MealPassLedger owns every change to a meal pass balance.
type MealPassLedger struct {
	repo database.Repository
	now  func() time.Time
}

func NewMealPassLedger(repo database.Repository) *MealPassLedger {
	return &MealPassLedger{repo: repo, now: time.Now}
}

type CreateMealPassRequest struct {
	CustomerID uint `json:"customer_id" binding:"required"`
	TotalMeals int  `json:"total_meals" binding:"required"`
}

func (l *MealPassLedger) CreatePass(ctx context.Context, req CreateMealPassRequest) (*models.MealPass, error) {
	if req.TotalMeals <= 0 {
		return nil, utils.InvalidOperation("total meals must be positive")
	}
	if _, err := l.repo.GetCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	pass := &models.MealPass{
		CustomerID: req.CustomerID,
		TotalMeals: req.TotalMeals,
		IsActive:   true,
	}
	if err := l.repo.CreateMealPass(ctx, pass); err != nil {
		return nil, err
	}
	utils.InfoLogger.WithFields(logrus.Fields{
		"meal_pass_id": pass.ID,
		"customer_id":  pass.CustomerID,
		"total_meals":  pass.TotalMeals,
	}).Info("Meal pass created")
	return pass, nil
}

func (l *MealPassLedger) GetPass(ctx context.Context, id uint) (*models.MealPass, error) {
	return l.repo.GetMealPass(ctx, id)
}

func (l *MealPassLedger) ListForCustomer(ctx context.Context, customerID uint) ([]models.MealPass, error) {
	return l.repo.ListMealPasses(ctx, customerID)
}

// Redeem uses mealsToUse meals from the pass. It fails without changing
// anything when the pass is inactive or has fewer meals left.
func (l *MealPassLedger) Redeem(ctx context.Context, id uint, mealsToUse int) (*models.MealPass, error) {
	var pass *models.MealPass
	err := l.repo.Transaction(ctx, func(tx database.Repository) error {
		var err error
		pass, err = l.debit(ctx, tx, id, mealsToUse, 0)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pass, nil
}

// debit runs inside the caller's transaction. A non-zero customerID also
// requires the pass to belong to that customer.
func (l *MealPassLedger) debit(ctx context.Context, tx database.Repository, id uint, meals int, customerID uint) (*models.MealPass, error) {
	if meals < 1 {
		return nil, utils.InvalidOperation("meals to use must be at least 1")
	}

	pass, err := tx.GetMealPass(ctx, id)
	if err != nil {
		return nil, err
	}
	if customerID != 0 && pass.CustomerID != customerID {
		return nil, utils.InvalidOperation("meal pass %d does not belong to customer %d", id, customerID)
	}
	if err := checkRedeemable(pass, meals); err != nil {
		return nil, err
	}

	now := l.now()
	ok, err := tx.DebitMealPass(ctx, id, meals, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Balance changed after we read it; report against the fresh row.
		if fresh, ferr := tx.GetMealPass(ctx, id); ferr == nil {
			if err := checkRedeemable(fresh, meals); err != nil {
				return nil, err
			}
		}
		return nil, utils.Conflict("meal pass %d changed concurrently", id)
	}

	pass, err = tx.GetMealPass(ctx, id)
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.WithFields(logrus.Fields{
		"meal_pass_id":    id,
		"meals_used":      meals,
		"meals_remaining": pass.MealsRemaining(),
	}).Info("Meal pass redeemed")
	return pass, nil
}

func checkRedeemable(pass *models.MealPass, meals int) error {
	if !pass.IsActive {
		return utils.InvalidOperation("meal pass %d is inactive", pass.ID)
	}
	if pass.MealsRemaining() < meals {
		return utils.InvalidOperation("meal pass %d has %d meals remaining, %d requested",
			pass.ID, pass.MealsRemaining(), meals)
	}
	return nil
}

type AdjustMealPassRequest struct {
	TotalMeals *int  `json:"total_meals"`
	MealsUsed  *int  `json:"meals_used"`
	IsActive   *bool `json:"is_active"`
}

// Adjust is the admin edit path and the only way meals_used can go down.
func (l *MealPassLedger) Adjust(ctx context.Context, id uint, req AdjustMealPassRequest) (*models.MealPass, error) {
	var pass *models.MealPass
	err := l.repo.Transaction(ctx, func(tx database.Repository) error {
		p, err := tx.GetMealPass(ctx, id)
		if err != nil {
			return err
		}
		if req.TotalMeals != nil {
			p.TotalMeals = *req.TotalMeals
		}
		if req.MealsUsed != nil {
			p.MealsUsed = *req.MealsUsed
		}
		if req.IsActive != nil {
			p.IsActive = *req.IsActive
		}
		if p.TotalMeals < 0 || p.MealsUsed < 0 || p.MealsUsed > p.TotalMeals {
			return utils.InvalidOperation("meals used must be between 0 and %d", p.TotalMeals)
		}
		if err := tx.UpdateMealPass(ctx, p); err != nil {
			return err
		}
		pass = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.WithFields(logrus.Fields{
		"meal_pass_id": pass.ID,
		"total_meals":  pass.TotalMeals,
		"meals_used":   pass.MealsUsed,
		"is_active":    pass.IsActive,
	}).Info("Meal pass adjusted")
	return pass, nil
}
