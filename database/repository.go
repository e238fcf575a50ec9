package database

import (
	"context"
	"time"

	"github.com/yeremiapane/mealbox-app/models"
)

// OrderFilter narrows ListOrders. Zero values mean "any".
type OrderFilter struct {
	CustomerID uint
	Status     models.OrderStatus
	Limit      int
}

// Repository is the persistence contract the services are written against.
// Lookups that find nothing return a utils.KindNotFound error and unique
// index violations return utils.KindConflict.
type Repository interface {
	// Transaction runs fn against a repository bound to one database
	// transaction. Returning an error rolls everything back.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	CreateCustomer(ctx context.Context, c *models.Customer) error
	GetCustomer(ctx context.Context, id uint) (*models.Customer, error)
	FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, c *models.Customer) error
	ListCustomers(ctx context.Context, activeOnly bool) ([]models.Customer, error)

	CreateMenuItem(ctx context.Context, m *models.MenuItem) error
	GetMenuItem(ctx context.Context, id uint) (*models.MenuItem, error)
	FindMenuItemByName(ctx context.Context, name string) (*models.MenuItem, error)
	GetMenuItemsByIDs(ctx context.Context, ids []uint) ([]models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, m *models.MenuItem) error
	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)

	GetPricingByBoxType(ctx context.Context, boxType string) (*models.Pricing, error)
	SavePricing(ctx context.Context, p *models.Pricing) error
	ListPricing(ctx context.Context) ([]models.Pricing, error)

	CreateOrder(ctx context.Context, o *models.Order) error
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error)
	// UpdateOrderStatus moves an order from one status to another. It
	// reports false when the order is no longer in status from.
	UpdateOrderStatus(ctx context.Context, id uint, from, to models.OrderStatus) (bool, error)

	CreateMealPass(ctx context.Context, p *models.MealPass) error
	GetMealPass(ctx context.Context, id uint) (*models.MealPass, error)
	ListMealPasses(ctx context.Context, customerID uint) ([]models.MealPass, error)
	UpdateMealPass(ctx context.Context, p *models.MealPass) error
	// DebitMealPass adds meals to meals_used only if the pass is active and
	// has at least that many meals left. It reports whether a row changed.
	DebitMealPass(ctx context.Context, id uint, meals int, at time.Time) (bool, error)

	CreateImportRun(ctx context.Context, r *models.ImportRun) error
	UpdateImportRun(ctx context.Context, r *models.ImportRun) error
	ListImportRuns(ctx context.Context) ([]models.ImportRun, error)

	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}
