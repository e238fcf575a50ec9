package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/mealbox-app/utils"
)

func TestCreatePass(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	cust := seedCustomer(t, store, "+19725551234")
	ledger := NewMealPassLedger(store)

	pass, err := ledger.CreatePass(ctx, CreateMealPassRequest{CustomerID: cust.ID, TotalMeals: 10})
	require.NoError(t, err)
	assert.True(t, pass.IsActive)
	assert.Equal(t, 10, pass.MealsRemaining())

	_, err = ledger.CreatePass(ctx, CreateMealPassRequest{CustomerID: cust.ID, TotalMeals: 0})
	assert.True(t, utils.IsKind(err, utils.KindInvalidOperation))

	_, err = ledger.CreatePass(ctx, CreateMealPassRequest{CustomerID: 999, TotalMeals: 5})
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	passes, err := ledger.ListForCustomer(ctx, cust.ID)
	require.NoError(t, err)
	assert.Len(t, passes, 1)
}

func TestRedeemDebitsBalance(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	cust := seedCustomer(t, store, "+19725551234")
	pass := seedMealPass(t, store, cust.ID, 5, 1, true)

	ledger := NewMealPassLedger(store)
	fixed := time.Date(2025, 7, 23, 12, 0, 0, 0, time.UTC)
	ledger.now = func() time.Time { return fixed }

	got, err := ledger.Redeem(ctx, pass.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, got.MealsUsed)
	assert.Equal(t, 2, got.MealsRemaining())
	require.NotNil(t, got.LastUsedAt)
	assert.True(t, fixed.Equal(*got.LastUsedAt))
}

func TestRedeemMoreThanRemainingFails(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	cust := seedCustomer(t, store, "+19725551234")
	pass := seedMealPass(t, store, cust.ID, 5, 2, true)
	ledger := NewMealPassLedger(store)

	_, err := ledger.Redeem(ctx, pass.ID, pass.MealsRemaining()+1)
	assert.True(t, utils.IsKind(err, utils.KindInvalidOperation))

	after, err := ledger.GetPass(ctx, pass.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, after.MealsUsed)
	assert.Nil(t, after.LastUsedAt)

	// The whole remainder is still redeemable.
	_, err = ledger.Redeem(ctx, pass.ID, pass.MealsRemaining())
	require.NoError(t, err)
}

func TestRedeemRejects(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	cust := seedCustomer(t, store, "+19725551234")
	inactive := seedMealPass(t, store, cust.ID, 5, 0, false)
	active := seedMealPass(t, store, cust.ID, 5, 0, true)
	ledger := NewMealPassLedger(store)

	tests := []struct {
		name  string
		id    uint
		meals int
		kind  utils.ErrorKind
	}{
		{"inactive pass", inactive.ID, 1, utils.KindInvalidOperation},
		{"zero meals", active.ID, 0, utils.KindInvalidOperation},
		{"negative meals", active.ID, -2, utils.KindInvalidOperation},
		{"unknown pass", 9999, 1, utils.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.Redeem(ctx, tt.id, tt.meals)
			assert.True(t, utils.IsKind(err, tt.kind), "got %v", err)
		})
	}

	after, err := ledger.GetPass(ctx, inactive.ID)
	require.NoError(t, err)
	assert.Zero(t, after.MealsUsed)
}

func TestConcurrentRedeemsNeverOverdraw(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	cust := seedCustomer(t, store, "+19725551234")
	pass := seedMealPass(t, store, cust.ID, 5, 0, true)
	ledger := NewMealPassLedger(store)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ledger.Redeem(ctx, pass.ID, 1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	after, err := ledger.GetPass(ctx, pass.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 5, after.MealsUsed)
	assert.LessOrEqual(t, after.MealsUsed, after.TotalMeals)
}

func TestAdjust(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	cust := seedCustomer(t, store, "+19725551234")
	pass := seedMealPass(t, store, cust.ID, 5, 4, true)
	ledger := NewMealPassLedger(store)

	used := 1
	got, err := ledger.Adjust(ctx, pass.ID, AdjustMealPassRequest{MealsUsed: &used})
	require.NoError(t, err)
	assert.Equal(t, 1, got.MealsUsed)

	tooMany := 6
	_, err = ledger.Adjust(ctx, pass.ID, AdjustMealPassRequest{MealsUsed: &tooMany})
	assert.True(t, utils.IsKind(err, utils.KindInvalidOperation))

	total := 0
	_, err = ledger.Adjust(ctx, pass.ID, AdjustMealPassRequest{TotalMeals: &total})
	assert.True(t, utils.IsKind(err, utils.KindInvalidOperation))

	off := false
	got, err = ledger.Adjust(ctx, pass.ID, AdjustMealPassRequest{IsActive: &off})
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	stored, err := ledger.GetPass(ctx, pass.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.MealsUsed)
	assert.Equal(t, 5, stored.TotalMeals)
	assert.False(t, stored.IsActive)
}
