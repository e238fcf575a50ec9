package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/mealbox-app/database"
	"github.com/yeremiapane/mealbox-app/models"
)

func newTestStore(t *testing.T) *database.Store {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return database.NewStore(db)
}

func seedCustomer(t *testing.T, repo database.Repository, phone string) *models.Customer {
	t.Helper()
	c := &models.Customer{FirstName: "Test", LastName: "Customer", Phone: phone, IsActive: true}
	require.NoError(t, repo.CreateCustomer(context.Background(), c))
	return c
}

func seedMenuItem(t *testing.T, repo database.Repository, name, price string, category models.Category) *models.MenuItem {
	t.Helper()
	m := &models.MenuItem{
		Name:        name,
		Price:       decimal.RequireFromString(price),
		Category:    category,
		IsAvailable: true,
	}
	require.NoError(t, repo.CreateMenuItem(context.Background(), m))
	return m
}

func seedMealPass(t *testing.T, repo database.Repository, customerID uint, total, used int, active bool) *models.MealPass {
	t.Helper()
	p := &models.MealPass{CustomerID: customerID, TotalMeals: total, MealsUsed: used, IsActive: active}
	require.NoError(t, repo.CreateMealPass(context.Background(), p))
	return p
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type recordingEvents struct {
	created []models.Order
	changed []models.Order
}

func (r *recordingEvents) OrderCreated(o models.Order)       { r.created = append(r.created, o) }
func (r *recordingEvents) OrderStatusChanged(o models.Order) { r.changed = append(r.changed, o) }
