package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/mealbox-app/database"
	"github.com/yeremiapane/mealbox-app/models"
	"github.com/yeremiapane/mealbox-app/normalize"
	"github.com/yeremiapane/mealbox-app/utils"
)

// ResolverCache memoizes the customers and menu items seen during one
// import run, keyed by normalized phone and by lower-cased item name.
// It is owned by a single run and is not safe for concurrent use.
type ResolverCache struct {
	customers map[string]*models.Customer
	items     map[string]*models.MenuItem
}

func NewResolverCache() *ResolverCache {
	return &ResolverCache{
		customers: make(map[string]*models.Customer),
		items:     make(map[string]*models.MenuItem),
	}
}

func (c *ResolverCache) Customer(phone string) (*models.Customer, bool) {
	cust, ok := c.customers[phone]
	return cust, ok
}

func (c *ResolverCache) MenuItem(name string) (*models.MenuItem, bool) {
	item, ok := c.items[models.MenuNameKey(name)]
	return item, ok
}

func (c *ResolverCache) putCustomer(cust *models.Customer) { c.customers[cust.Phone] = cust }

func (c *ResolverCache) putMenuItem(item *models.MenuItem) { c.items[item.NameKey] = item }

func (c *ResolverCache) Len() (customers, items int) {
	return len(c.customers), len(c.items)
}

// Resolver maps natural keys to stored entities, creating them on first
// sight. A cache hit never touches storage; a miss reads storage and, if
// the entity is absent, writes it before returning.
type Resolver struct {
	repo  database.Repository
	cache *ResolverCache

	CustomersCreated int
	ItemsCreated     int
}

func NewResolver(repo database.Repository, cache *ResolverCache) *Resolver {
	if cache == nil {
		cache = NewResolverCache()
	}
	return &Resolver{repo: repo, cache: cache}
}

// ResolveCustomer returns the customer owning phone. Name and email are only
// used when the customer has to be created.
func (r *Resolver) ResolveCustomer(ctx context.Context, phone, firstName, lastName, email string) (*models.Customer, error) {
	key, err := normalize.NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	if cust, ok := r.cache.Customer(key); ok {
		return cust, nil
	}

	cust, err := r.repo.FindCustomerByPhone(ctx, key)
	if err == nil {
		r.cache.putCustomer(cust)
		return cust, nil
	}
	if !database.IsNotFound(err) {
		return nil, err
	}

	cust = &models.Customer{
		FirstName: firstName,
		LastName:  lastName,
		Phone:     key,
		IsActive:  true,
	}
	if email != "" {
		cust.Email = &email
	}
	if err := r.repo.CreateCustomer(ctx, cust); err != nil {
		if !utils.IsKind(err, utils.KindConflict) {
			return nil, err
		}
		// Someone else created it between our lookup and insert.
		existing, ferr := r.repo.FindCustomerByPhone(ctx, key)
		if ferr != nil {
			return nil, err
		}
		utils.InfoLogger.WithField("phone", key).Warn("Customer created concurrently, using existing record")
		cust = existing
	} else {
		r.CustomersCreated++
		utils.InfoLogger.WithFields(logrus.Fields{"customer_id": cust.ID, "phone": key}).Debug("Customer created by resolver")
	}

	r.cache.putCustomer(cust)
	return cust, nil
}

// ResolveMenuItem returns the item named name (case-insensitive). New items
// get the category and default price from the normalize rule tables.
func (r *Resolver) ResolveMenuItem(ctx context.Context, name string) (*models.MenuItem, error) {
	key := models.MenuNameKey(name)
	if key == "" {
		return nil, utils.ParseSkip("empty menu item name")
	}
	if item, ok := r.cache.MenuItem(key); ok {
		return item, nil
	}

	item, err := r.repo.FindMenuItemByName(ctx, key)
	if err == nil {
		r.cache.putMenuItem(item)
		return item, nil
	}
	if !database.IsNotFound(err) {
		return nil, err
	}

	item = &models.MenuItem{
		Name:        name,
		Description: "Imported from legacy order history",
		Price:       normalize.DefaultPrice(name),
		Category:    normalize.InferCategory(name),
		IsAvailable: true,
	}
	if err := r.repo.CreateMenuItem(ctx, item); err != nil {
		if !utils.IsKind(err, utils.KindConflict) {
			return nil, err
		}
		existing, ferr := r.repo.FindMenuItemByName(ctx, key)
		if ferr != nil {
			return nil, err
		}
		item = existing
	} else {
		r.ItemsCreated++
		utils.InfoLogger.WithFields(logrus.Fields{
			"menu_item_id": item.ID,
			"name":         item.Name,
			"category":     item.Category,
		}).Info("Menu item created by resolver")
	}

	r.cache.putMenuItem(item)
	return item, nil
}
