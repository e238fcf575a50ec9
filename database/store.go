package database

import (
	"context"
	"time"

	"github.com/yeremiapane/mealbox-app/models"
	"github.com/yeremiapane/mealbox-app/utils"
	"gorm.io/gorm"
)

// Store is the gorm implementation of Repository.
type Store struct {
	db *gorm.DB
}

var _ Repository = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *Store) Transaction(ctx context.Context, fn func(tx Repository) error) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// ---- customers ----

func (s *Store) CreateCustomer(ctx context.Context, c *models.Customer) error {
	return translate(s.conn(ctx).Create(c).Error, "create customer %s", c.Phone)
}

func (s *Store) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := s.conn(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err, "customer %d", id)
	}
	return &c, nil
}

func (s *Store) FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	var c models.Customer
	if err := s.conn(ctx).Where("phone = ?", phone).First(&c).Error; err != nil {
		return nil, translate(err, "customer with phone %s", phone)
	}
	return &c, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	return translate(s.conn(ctx).Save(c).Error, "update customer %d", c.ID)
}

func (s *Store) ListCustomers(ctx context.Context, activeOnly bool) ([]models.Customer, error) {
	var customers []models.Customer
	q := s.conn(ctx).Order("id asc")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&customers).Error; err != nil {
		return nil, translate(err, "list customers")
	}
	return customers, nil
}

// ---- menu items ----

func (s *Store) CreateMenuItem(ctx context.Context, m *models.MenuItem) error {
	return translate(s.conn(ctx).Create(m).Error, "create menu item %q", m.Name)
}

func (s *Store) GetMenuItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	var m models.MenuItem
	if err := s.conn(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err, "menu item %d", id)
	}
	return &m, nil
}

func (s *Store) FindMenuItemByName(ctx context.Context, name string) (*models.MenuItem, error) {
	var m models.MenuItem
	if err := s.conn(ctx).Where("name_key = ?", models.MenuNameKey(name)).First(&m).Error; err != nil {
		return nil, translate(err, "menu item %q", name)
	}
	return &m, nil
}

func (s *Store) GetMenuItemsByIDs(ctx context.Context, ids []uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if len(ids) == 0 {
		return items, nil
	}
	if err := s.conn(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, translate(err, "menu items by id")
	}
	return items, nil
}

func (s *Store) UpdateMenuItem(ctx context.Context, m *models.MenuItem) error {
	return translate(s.conn(ctx).Save(m).Error, "update menu item %d", m.ID)
}

func (s *Store) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.conn(ctx).Order("name asc").Find(&items).Error; err != nil {
		return nil, translate(err, "list menu items")
	}
	return items, nil
}

// ---- pricing ----

func (s *Store) GetPricingByBoxType(ctx context.Context, boxType string) (*models.Pricing, error) {
	var p models.Pricing
	if err := s.conn(ctx).Where("box_type = ?", boxType).First(&p).Error; err != nil {
		return nil, translate(err, "pricing %q", boxType)
	}
	return &p, nil
}

func (s *Store) SavePricing(ctx context.Context, p *models.Pricing) error {
	return translate(s.conn(ctx).Save(p).Error, "save pricing %q", p.BoxType)
}

func (s *Store) ListPricing(ctx context.Context) ([]models.Pricing, error) {
	var list []models.Pricing
	if err := s.conn(ctx).Order("box_type asc").Find(&list).Error; err != nil {
		return nil, translate(err, "list pricing")
	}
	return list, nil
}

// ---- orders ----

func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	return translate(s.conn(ctx).Create(o).Error, "create order %s", o.OrderNumber)
}

func (s *Store) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	err := s.conn(ctx).
		Preload("Items").
		Preload("Extras").
		Preload("Customer").
		First(&o, id).Error
	if err != nil {
		return nil, translate(err, "order %d", id)
	}
	return &o, nil
}

func (s *Store) ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	var orders []models.Order
	q := s.conn(ctx).Preload("Items").Preload("Extras").Order("order_date desc, id desc")
	if f.CustomerID != 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if err := q.Find(&orders).Error; err != nil {
		return nil, translate(err, "list orders")
	}
	return orders, nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id uint, from, to models.OrderStatus) (bool, error) {
	res := s.conn(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, translate(res.Error, "update order %d status", id)
	}
	return res.RowsAffected == 1, nil
}

// ---- meal passes ----

func (s *Store) CreateMealPass(ctx context.Context, p *models.MealPass) error {
	return translate(s.conn(ctx).Create(p).Error, "create meal pass")
}

func (s *Store) GetMealPass(ctx context.Context, id uint) (*models.MealPass, error) {
	var p models.MealPass
	if err := s.conn(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err, "meal pass %d", id)
	}
	return &p, nil
}

func (s *Store) ListMealPasses(ctx context.Context, customerID uint) ([]models.MealPass, error) {
	var passes []models.MealPass
	if err := s.conn(ctx).Where("customer_id = ?", customerID).Order("id asc").Find(&passes).Error; err != nil {
		return nil, translate(err, "list meal passes")
	}
	return passes, nil
}

func (s *Store) UpdateMealPass(ctx context.Context, p *models.MealPass) error {
	return translate(s.conn(ctx).Save(p).Error, "update meal pass %d", p.ID)
}

func (s *Store) DebitMealPass(ctx context.Context, id uint, meals int, at time.Time) (bool, error) {
	res := s.conn(ctx).Model(&models.MealPass{}).
		Where("id = ? AND is_active = ? AND total_meals - meals_used >= ?", id, true, meals).
		Updates(map[string]interface{}{
			"meals_used":   gorm.Expr("meals_used + ?", meals),
			"last_used_at": at,
			"updated_at":   at,
		})
	if res.Error != nil {
		return false, translate(res.Error, "debit meal pass %d", id)
	}
	return res.RowsAffected == 1, nil
}

// ---- import runs ----

func (s *Store) CreateImportRun(ctx context.Context, r *models.ImportRun) error {
	return translate(s.conn(ctx).Create(r).Error, "create import run")
}

func (s *Store) UpdateImportRun(ctx context.Context, r *models.ImportRun) error {
	return translate(s.conn(ctx).Save(r).Error, "update import run %d", r.ID)
}

func (s *Store) ListImportRuns(ctx context.Context) ([]models.ImportRun, error) {
	var runs []models.ImportRun
	if err := s.conn(ctx).Order("started_at desc").Find(&runs).Error; err != nil {
		return nil, translate(err, "list import runs")
	}
	return runs, nil
}

// ---- users ----

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return translate(s.conn(ctx).Create(u).Error, "create user %s", u.Email)
}

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err, "user %d", id)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.conn(ctx).Order("id asc").Find(&users).Error; err != nil {
		return nil, translate(err, "list users")
	}
	return users, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err, "user %s", email)
	}
	return &u, nil
}

// IsNotFound is a small convenience for callers that only branch on absence.
func IsNotFound(err error) bool {
	return utils.IsKind(err, utils.KindNotFound)
}
