package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/mealbox-app/database"
	"github.com/yeremiapane/mealbox-app/models"
	"github.com/yeremiapane/mealbox-app/normalize"
	"github.com/yeremiapane/mealbox-app/utils"
)

type orderFixture struct {
	store   *database.Store
	events  *recordingEvents
	orders  *OrderAssembler
	ledger  *MealPassLedger
	cust    *models.Customer
	veg     *models.MenuItem
	nonVeg  *models.MenuItem
	special *models.MenuItem
	raita   *models.MenuItem
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	utils.InitLogger()
	store := newTestStore(t)
	f := &orderFixture{
		store:   store,
		events:  &recordingEvents{},
		cust:    seedCustomer(t, store, "+19725551234"),
		veg:     seedMenuItem(t, store, "VegComfortBox", "11.50", models.CategoryVeg),
		nonVeg:  seedMenuItem(t, store, "NonVegComfortBox", "13.00", models.CategoryNonVeg),
		special: seedMenuItem(t, store, "VegSpecial", "15.00", models.CategoryVegSpecial),
		raita:   seedMenuItem(t, store, "Raita", "2.25", models.CategoryExtra),
	}
	f.ledger = NewMealPassLedger(store)
	f.orders = NewOrderAssembler(store, f.ledger, f.events)
	return f
}

func (f *orderFixture) countOrders(t *testing.T) int {
	t.Helper()
	list, err := f.store.ListOrders(context.Background(), database.OrderFilter{})
	require.NoError(t, err)
	return len(list)
}

func TestCreateOrderTotals(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	order, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
		CustomerID:     f.cust.ID,
		BuildingNumber: " 4521 ",
		Items: []OrderLine{
			{MenuItemID: f.veg.ID, Quantity: 2},
			{MenuItemID: f.nonVeg.ID, Quantity: 1},
		},
		Extras: []OrderLine{{MenuItemID: f.raita.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "4521", order.BuildingNumber)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.True(t, dec("42.75").Equal(order.TotalAmount), "total %s", order.TotalAmount)
	assert.True(t, order.DiscountAmount.IsZero())
	assert.Nil(t, order.MealPassID)
	require.Len(t, f.events.created, 1)
	assert.Equal(t, order.ID, f.events.created[0].ID)

	stored, err := f.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2)
	assert.Len(t, stored.Extras, 1)
	require.NotNil(t, stored.Customer)
	assert.Equal(t, f.cust.ID, stored.Customer.ID)
	assert.True(t, stored.Subtotal().Sub(stored.DiscountAmount).Equal(stored.TotalAmount))
}

func TestCreateOrderSnapshotsPrices(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	order, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
		CustomerID: f.cust.ID,
		Items:      []OrderLine{{MenuItemID: f.veg.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	newPrice := dec("99.00")
	_, err = NewPriceCatalog(f.store).UpdateMenuItem(ctx, f.veg.ID, UpdateMenuItemRequest{Price: &newPrice})
	require.NoError(t, err)

	stored, err := f.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, dec("11.50").Equal(stored.Items[0].Price))
	assert.True(t, dec("11.50").Equal(stored.TotalAmount))
}

func TestCreateOrderRejectsBadRequests(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	unavailable := seedMenuItem(t, f.store, "OldBox", "9.00", models.CategoryVeg)
	off := false
	_, err := NewPriceCatalog(f.store).UpdateMenuItem(ctx, unavailable.ID, UpdateMenuItemRequest{IsAvailable: &off})
	require.NoError(t, err)

	inactive := seedCustomer(t, f.store, "+19725550000")
	inactive.IsActive = false
	require.NoError(t, f.store.UpdateCustomer(ctx, inactive))

	tests := []struct {
		name string
		req  CreateOrderRequest
		kind utils.ErrorKind
	}{
		{"no items", CreateOrderRequest{CustomerID: f.cust.ID}, utils.KindInvalidOperation},
		{"zero quantity", CreateOrderRequest{CustomerID: f.cust.ID, Items: []OrderLine{{MenuItemID: f.veg.ID, Quantity: 0}}}, utils.KindInvalidOperation},
		{"negative extra", CreateOrderRequest{
			CustomerID: f.cust.ID,
			Items:      []OrderLine{{MenuItemID: f.veg.ID, Quantity: 1}},
			Extras:     []OrderLine{{MenuItemID: f.raita.ID, Quantity: -1}},
		}, utils.KindInvalidOperation},
		{"missing menu item", CreateOrderRequest{CustomerID: f.cust.ID, Items: []OrderLine{
			{MenuItemID: f.veg.ID, Quantity: 1},
			{MenuItemID: 4242, Quantity: 1},
		}}, utils.KindNotFound},
		{"unknown customer", CreateOrderRequest{CustomerID: 777, Items: []OrderLine{{MenuItemID: f.veg.ID, Quantity: 1}}}, utils.KindNotFound},
		{"inactive customer", CreateOrderRequest{CustomerID: inactive.ID, Items: []OrderLine{{MenuItemID: f.veg.ID, Quantity: 1}}}, utils.KindInvalidOperation},
		{"unavailable item", CreateOrderRequest{CustomerID: f.cust.ID, Items: []OrderLine{{MenuItemID: unavailable.ID, Quantity: 1}}}, utils.KindInvalidOperation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.orders.CreateOrder(ctx, tt.req)
			assert.True(t, utils.IsKind(err, tt.kind), "got %v", err)
		})
	}

	assert.Zero(t, f.countOrders(t))
	assert.Empty(t, f.events.created)
}

func TestCreateOrderWithMealPass(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	pass := seedMealPass(t, f.store, f.cust.ID, 3, 0, true)

	order, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
		CustomerID: f.cust.ID,
		Items: []OrderLine{
			{MenuItemID: f.veg.ID, Quantity: 2},
			{MenuItemID: f.special.ID, Quantity: 1},
		},
		Extras:     []OrderLine{{MenuItemID: f.raita.ID, Quantity: 1}},
		MealPassID: &pass.ID,
	})
	require.NoError(t, err)

	// Subtotal 23 + 15 + 2.25, the two veg boxes are covered by the pass.
	assert.True(t, dec("23").Equal(order.DiscountAmount), "discount %s", order.DiscountAmount)
	assert.True(t, dec("17.25").Equal(order.TotalAmount), "total %s", order.TotalAmount)
	require.NotNil(t, order.MealPassID)
	assert.Equal(t, pass.ID, *order.MealPassID)

	after, err := f.ledger.GetPass(ctx, pass.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, after.MealsUsed)
}

func TestCreateOrderMealPassFailureLeavesNothing(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	small := seedMealPass(t, f.store, f.cust.ID, 1, 0, true)
	other := seedCustomer(t, f.store, "+19725559999")
	foreign := seedMealPass(t, f.store, other.ID, 10, 0, true)

	tests := []struct {
		name  string
		pass  uint
		items []OrderLine
	}{
		{"insufficient balance", small.ID, []OrderLine{{MenuItemID: f.veg.ID, Quantity: 2}}},
		{"pass of another customer", foreign.ID, []OrderLine{{MenuItemID: f.veg.ID, Quantity: 1}}},
		{"nothing to cover", small.ID, []OrderLine{{MenuItemID: f.special.ID, Quantity: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passID := tt.pass
			_, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
				CustomerID: f.cust.ID,
				Items:      tt.items,
				MealPassID: &passID,
			})
			assert.True(t, utils.IsKind(err, utils.KindInvalidOperation), "got %v", err)
		})
	}

	assert.Zero(t, f.countOrders(t))
	for _, id := range []uint{small.ID, foreign.ID} {
		p, err := f.ledger.GetPass(ctx, id)
		require.NoError(t, err)
		assert.Zero(t, p.MealsUsed)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	order, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
		CustomerID: f.cust.ID,
		Items:      []OrderLine{{MenuItemID: f.veg.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = f.orders.UpdateOrderStatus(ctx, order.ID, models.OrderStatusDelivered)
	assert.True(t, utils.IsKind(err, utils.KindInvalidOperation))

	for _, s := range []models.OrderStatus{
		models.OrderStatusConfirmed,
		models.OrderStatusInPreparation,
	} {
		got, err := f.orders.UpdateOrderStatus(ctx, order.ID, s)
		require.NoError(t, err)
		assert.Equal(t, s, got.Status)
	}

	same, err := f.orders.UpdateOrderStatus(ctx, order.ID, models.OrderStatusInPreparation)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusInPreparation, same.Status)
	assert.Len(t, f.events.changed, 2)

	cancelled, err := f.orders.UpdateOrderStatus(ctx, order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.True(t, dec("11.50").Equal(cancelled.TotalAmount))

	_, err = f.orders.UpdateOrderStatus(ctx, order.ID, models.OrderStatusConfirmed)
	assert.True(t, utils.IsKind(err, utils.KindInvalidOperation))

	_, err = f.orders.UpdateOrderStatus(ctx, 9999, models.OrderStatusConfirmed)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestCancelDoesNotRestoreMealPass(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	pass := seedMealPass(t, f.store, f.cust.ID, 4, 0, true)

	order, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
		CustomerID: f.cust.ID,
		Items:      []OrderLine{{MenuItemID: f.nonVeg.ID, Quantity: 2}},
		MealPassID: &pass.ID,
	})
	require.NoError(t, err)

	_, err = f.orders.UpdateOrderStatus(ctx, order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)

	after, err := f.ledger.GetPass(ctx, pass.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, after.MealsUsed)
}

func TestListOrdersFilters(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	other := seedCustomer(t, f.store, "+19725558888")

	for _, cid := range []uint{f.cust.ID, f.cust.ID, other.ID} {
		_, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
			CustomerID: cid,
			Items:      []OrderLine{{MenuItemID: f.veg.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	mine, err := f.orders.ListOrders(ctx, database.OrderFilter{CustomerID: f.cust.ID})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	limited, err := f.orders.ListOrders(ctx, database.OrderFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	delivered, err := f.orders.ListOrders(ctx, database.OrderFilter{Status: models.OrderStatusDelivered})
	require.NoError(t, err)
	assert.Empty(t, delivered)
}

func TestAssembleLegacyOrder(t *testing.T) {
	date := time.Date(2025, 7, 23, 0, 0, 0, 0, time.UTC)
	cust := &models.Customer{ID: 7}
	item := &models.MenuItem{ID: 3, Name: "NonVegComfortBox", Category: models.CategoryNonVeg, Price: dec("13")}
	row := normalize.Row{SerialNo: " 12 ", ItemName: "NonVegComfortBox", Quantity: 2, BuildingNumber: "4521", Comments: "Brown rice"}

	o := AssembleLegacyOrder(date, row, 5, cust, item, "ABCD1234")
	assert.Equal(t, "LEG-20250723-12-R5-ABCD1234", o.OrderNumber)
	assert.Equal(t, models.OrderStatusDelivered, o.Status)
	assert.Equal(t, uint(7), o.CustomerID)
	assert.True(t, dec("26").Equal(o.TotalAmount))
	assert.True(t, o.DiscountAmount.IsZero())
	require.Len(t, o.Items, 1)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.Empty(t, o.Extras)
	assert.Equal(t, "Brown rice", o.Comments)

	row.SerialNo = ""
	assert.Equal(t, "LEG-20250723-R5-ABCD1234", AssembleLegacyOrder(date, row, 5, cust, item, "ABCD1234").OrderNumber)

	row.SerialNo = strings.Repeat("9", 25)
	long := AssembleLegacyOrder(date, row, 6, cust, item, "ABCD1234").OrderNumber
	assert.Equal(t, "LEG-20250723-"+strings.Repeat("9", 20)+"-R6-ABCD1234", long)
	assert.LessOrEqual(t, len(long), 64)
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.OrderStatus
		ok       bool
	}{
		{models.OrderStatusPending, models.OrderStatusConfirmed, true},
		{models.OrderStatusConfirmed, models.OrderStatusInPreparation, true},
		{models.OrderStatusInPreparation, models.OrderStatusReadyForDelivery, true},
		{models.OrderStatusReadyForDelivery, models.OrderStatusOutForDelivery, true},
		{models.OrderStatusOutForDelivery, models.OrderStatusDelivered, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusOutForDelivery, models.OrderStatusCancelled, true},
		{models.OrderStatusPending, models.OrderStatusInPreparation, false},
		{models.OrderStatusConfirmed, models.OrderStatusPending, false},
		{models.OrderStatusDelivered, models.OrderStatusCancelled, false},
		{models.OrderStatusCancelled, models.OrderStatusPending, false},
		{models.OrderStatus("bogus"), models.OrderStatusCancelled, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, CanTransition(tt.from, tt.to))
		})
	}
}

func TestParseOrderStatus(t *testing.T) {
	s, err := ParseOrderStatus(" Out_For_Delivery ")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusOutForDelivery, s)

	_, err = ParseOrderStatus("shipped")
	assert.True(t, utils.IsKind(err, utils.KindInvalidOperation))
}
