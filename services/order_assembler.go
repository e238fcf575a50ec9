package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/mealbox-app/database"
	"github.com/yeremiapane/mealbox-app/models"
	"github.com/yeremiapane/mealbox-app/normalize"
	"github.com/yeremiapane/mealbox-app/utils"
)

type OrderLine struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

type CreateOrderRequest struct {
	CustomerID     uint        `json:"customer_id" binding:"required"`
	BuildingNumber string      `json:"building_number"`
	Comments       string      `json:"comments"`
	Items          []OrderLine `json:"items"`
	Extras         []OrderLine `json:"extras"`
	MealPassID     *uint       `json:"meal_pass_id"`
}

// OrderAssembler builds Order aggregates for live requests and for
// imported legacy rows, and owns order status changes.
type OrderAssembler struct {
	repo   database.Repository
	ledger *MealPassLedger
	events OrderEvents
	now    func() time.Time
}

func NewOrderAssembler(repo database.Repository, ledger *MealPassLedger, events OrderEvents) *OrderAssembler {
	if events == nil {
		events = noopEvents{}
	}
	if ledger == nil {
		ledger = NewMealPassLedger(repo)
	}
	return &OrderAssembler{repo: repo, ledger: ledger, events: events, now: time.Now}
}

// CreateOrder prices every line from the catalog, optionally redeems a meal
// pass for the comfort-box lines, and stores the order. Either all of it
// happens or none of it does.
func (a *OrderAssembler) CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	log := utils.InfoLogger.WithFields(logrus.Fields{"customer_id": req.CustomerID, "items": len(req.Items)})
	log.Info("Creating order")

	if err := validateOrderRequest(req); err != nil {
		log.WithError(err).Warn("Create failed: invalid request")
		return nil, err
	}

	var order *models.Order
	err := a.repo.Transaction(ctx, func(tx database.Repository) error {
		customer, err := tx.GetCustomer(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		if !customer.IsActive {
			return utils.InvalidOperation("customer %d is inactive", customer.ID)
		}

		ids := make([]uint, 0, len(req.Items)+len(req.Extras))
		for _, l := range req.Items {
			ids = append(ids, l.MenuItemID)
		}
		for _, l := range req.Extras {
			ids = append(ids, l.MenuItemID)
		}
		priced, err := NewPriceCatalog(tx).resolveByID(ctx, ids)
		if err != nil {
			return err
		}

		now := a.now()
		o := &models.Order{
			OrderNumber:    liveOrderNumber(now),
			CustomerID:     customer.ID,
			BuildingNumber: strings.TrimSpace(req.BuildingNumber),
			Comments:       strings.TrimSpace(req.Comments),
			Status:         models.OrderStatusPending,
			DiscountAmount: decimal.Zero,
			OrderDate:      now,
		}
		for _, l := range req.Items {
			item := priced[l.MenuItemID]
			if !item.IsAvailable {
				return utils.InvalidOperation("menu item %d (%s) is not available", item.ID, item.Name)
			}
			o.Items = append(o.Items, models.OrderItem{
				MenuItemID: item.ID,
				Name:       item.Name,
				Category:   item.Category,
				Quantity:   l.Quantity,
				Price:      item.Price,
			})
		}
		for _, l := range req.Extras {
			item := priced[l.MenuItemID]
			if !item.IsAvailable {
				return utils.InvalidOperation("menu item %d (%s) is not available", item.ID, item.Name)
			}
			o.Extras = append(o.Extras, models.OrderExtra{
				MenuItemID: item.ID,
				Name:       item.Name,
				Quantity:   l.Quantity,
				Price:      item.Price,
			})
		}

		if req.MealPassID != nil {
			meals, discount := comfortBoxCoverage(o.Items)
			if meals == 0 {
				return utils.InvalidOperation("order has no comfort-box items to redeem against meal pass %d", *req.MealPassID)
			}
			if _, err := a.ledger.debit(ctx, tx, *req.MealPassID, meals, customer.ID); err != nil {
				return err
			}
			o.MealPassID = req.MealPassID
			o.DiscountAmount = discount
		}

		o.TotalAmount = o.Subtotal().Sub(o.DiscountAmount)
		if err := tx.CreateOrder(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("Create order failed")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total_amount": order.TotalAmount.StringFixed(2),
	}).Info("Order created")
	a.events.OrderCreated(*order)
	return order, nil
}

func validateOrderRequest(req CreateOrderRequest) error {
	if req.CustomerID == 0 {
		return utils.InvalidOperation("customer id is required")
	}
	if len(req.Items) == 0 {
		return utils.InvalidOperation("order must contain at least one item")
	}
	for _, l := range req.Items {
		if l.Quantity <= 0 {
			return utils.InvalidOperation("quantity for menu item %d must be positive", l.MenuItemID)
		}
	}
	for _, l := range req.Extras {
		if l.Quantity <= 0 {
			return utils.InvalidOperation("quantity for extra %d must be positive", l.MenuItemID)
		}
	}
	return nil
}

// comfortBoxCoverage returns how many meals a pass must cover for the
// comfort-box lines and what those lines cost. Specials and extras are
// never covered.
func comfortBoxCoverage(items []models.OrderItem) (int, decimal.Decimal) {
	meals := 0
	discount := decimal.Zero
	for _, it := range items {
		if it.Category.IsComfortBox() {
			meals += it.Quantity
			discount = discount.Add(it.LineTotal())
		}
	}
	return meals, discount
}

func liveOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102150405"), suffix)
}

// AssembleLegacyOrder builds the single-item, already delivered order for
// one imported row. It does not touch storage.
func AssembleLegacyOrder(date time.Time, row normalize.Row, rowIndex int, customer *models.Customer, item *models.MenuItem, runTag string) *models.Order {
	line := models.OrderItem{
		MenuItemID: item.ID,
		Name:       item.Name,
		Category:   item.Category,
		Quantity:   row.Quantity,
		Price:      item.Price,
	}
	return &models.Order{
		OrderNumber:    legacyOrderNumber(date, row.SerialNo, rowIndex, runTag),
		CustomerID:     customer.ID,
		BuildingNumber: row.BuildingNumber,
		Comments:       row.Comments,
		Status:         models.OrderStatusDelivered,
		TotalAmount:    line.LineTotal(),
		DiscountAmount: decimal.Zero,
		OrderDate:      date,
		Items:          []models.OrderItem{line},
	}
}

// legacyOrderNumber always carries the row index, so rows that repeat a
// serial within one file still get distinct numbers.
func legacyOrderNumber(date time.Time, serial string, rowIndex int, runTag string) string {
	day := date.Format("20060102")
	serial = strings.Join(strings.Fields(serial), "")
	if len(serial) > 20 {
		serial = serial[:20]
	}
	if serial == "" {
		return fmt.Sprintf("LEG-%s-R%d-%s", day, rowIndex, runTag)
	}
	return fmt.Sprintf("LEG-%s-%s-R%d-%s", day, serial, rowIndex, runTag)
}

func (a *OrderAssembler) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	return a.repo.GetOrder(ctx, id)
}

func (a *OrderAssembler) ListOrders(ctx context.Context, f database.OrderFilter) ([]models.Order, error) {
	return a.repo.ListOrders(ctx, f)
}

// UpdateOrderStatus applies one state-machine step. Totals and meal-pass
// balances are left as they are, including on cancellation.
func (a *OrderAssembler) UpdateOrderStatus(ctx context.Context, id uint, to models.OrderStatus) (*models.Order, error) {
	order, err := a.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == to {
		return order, nil
	}
	if !CanTransition(order.Status, to) {
		return nil, utils.InvalidOperation("cannot move order %d from %s to %s", id, order.Status, to)
	}

	ok, err := a.repo.UpdateOrderStatus(ctx, id, order.Status, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, utils.Conflict("order %d changed status concurrently", id)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": id,
		"from":     order.Status,
		"to":       to,
	}).Info("Order status updated")
	order.Status = to
	a.events.OrderStatusChanged(*order)
	return order, nil
}
