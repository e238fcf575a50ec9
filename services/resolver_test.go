package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/mealbox-app/database"
	"github.com/yeremiapane/mealbox-app/models"
	"github.com/yeremiapane/mealbox-app/utils"
)

// countingRepo counts storage lookups made by the resolver.
type countingRepo struct {
	database.Repository
	phoneLookups int
	nameLookups  int
}

func (c *countingRepo) FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	c.phoneLookups++
	return c.Repository.FindCustomerByPhone(ctx, phone)
}

func (c *countingRepo) FindMenuItemByName(ctx context.Context, name string) (*models.MenuItem, error) {
	c.nameLookups++
	return c.Repository.FindMenuItemByName(ctx, name)
}

// racingRepo hides the first phone lookup so the resolver's insert collides
// with a row another writer already stored.
type racingRepo struct {
	database.Repository
	hidden bool
}

func (r *racingRepo) FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	if !r.hidden {
		r.hidden = true
		return nil, utils.NotFound("customer with phone %s", phone)
	}
	return r.Repository.FindCustomerByPhone(ctx, phone)
}

func TestResolveCustomerMemoizesPhoneSpellings(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	r := NewResolver(store, nil)

	a, err := r.ResolveCustomer(ctx, "9876543210", "Ravi", "Kumar", "")
	require.NoError(t, err)
	b, err := r.ResolveCustomer(ctx, "(987) 654-3210", "Someone", "Else", "")
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, 1, r.CustomersCreated)
	assert.Equal(t, "+19876543210", a.Phone)

	all, err := store.ListCustomers(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, "Ravi", all[0].FirstName)
}

func TestResolveCustomerCacheHitSkipsStorage(t *testing.T) {
	ctx := context.Background()
	repo := &countingRepo{Repository: newTestStore(t)}
	r := NewResolver(repo, NewResolverCache())

	_, err := r.ResolveCustomer(ctx, "9725551234", "Ravi", "Kumar", "")
	require.NoError(t, err)
	_, err = r.ResolveCustomer(ctx, "972.555.1234", "", "", "")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.phoneLookups)
}

func TestResolveCustomerFindsStoredCustomer(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	existing := seedCustomer(t, store, "+919876543210")

	r := NewResolver(store, nil)
	got, err := r.ResolveCustomer(ctx, "91 98765 43210", "New", "Name", "")
	require.NoError(t, err)

	assert.Equal(t, existing.ID, got.ID)
	assert.Equal(t, "Test", got.FirstName)
	assert.Zero(t, r.CustomersCreated)
}

func TestResolveCustomerRecoversFromConflict(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	rival := seedCustomer(t, store, "+19876543210")

	r := NewResolver(&racingRepo{Repository: store}, nil)
	got, err := r.ResolveCustomer(ctx, "9876543210", "Ravi", "Kumar", "")
	require.NoError(t, err)

	assert.Equal(t, rival.ID, got.ID)
	assert.Zero(t, r.CustomersCreated)
}

func TestResolveCustomerRejectsUnusablePhone(t *testing.T) {
	r := NewResolver(newTestStore(t), nil)
	_, err := r.ResolveCustomer(context.Background(), "NA", "Ravi", "Kumar", "")
	assert.True(t, utils.IsKind(err, utils.KindParseSkip))
}

func TestResolveCustomerKeepsEmail(t *testing.T) {
	r := NewResolver(newTestStore(t), nil)
	c, err := r.ResolveCustomer(context.Background(), "9876543210", "Ravi", "Kumar", "ravi@example.com")
	require.NoError(t, err)
	require.NotNil(t, c.Email)
	assert.Equal(t, "ravi@example.com", *c.Email)
	assert.True(t, c.IsActive)
}

func TestResolveMenuItemCreatesWithRuleDefaults(t *testing.T) {
	ctx := context.Background()
	repo := &countingRepo{Repository: newTestStore(t)}
	r := NewResolver(repo, nil)

	item, err := r.ResolveMenuItem(ctx, "NonVegSpecial")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryNonVegSpecial, item.Category)
	assert.True(t, dec("15").Equal(item.Price))

	again, err := r.ResolveMenuItem(ctx, "  nonvegspecial ")
	require.NoError(t, err)
	assert.Equal(t, item.ID, again.ID)
	assert.Equal(t, 1, r.ItemsCreated)
	assert.Equal(t, 1, repo.nameLookups)
}

func TestResolveMenuItemMatchesExistingCaseInsensitively(t *testing.T) {
	store := newTestStore(t)
	existing := seedMenuItem(t, store, "VegComfortBox", "12.50", models.CategoryVeg)

	r := NewResolver(store, nil)
	got, err := r.ResolveMenuItem(context.Background(), "VEGCOMFORTBOX")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)
	assert.True(t, dec("12.5").Equal(got.Price))
	assert.Zero(t, r.ItemsCreated)
}

func TestResolveMenuItemUnknownNameIsGeneral(t *testing.T) {
	r := NewResolver(newTestStore(t), nil)
	item, err := r.ResolveMenuItem(context.Background(), "Raita")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryGeneral, item.Category)
	assert.True(t, dec("10").Equal(item.Price))
}
