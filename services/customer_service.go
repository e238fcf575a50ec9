package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/mealbox-app/database"
	"github.com/yeremiapane/mealbox-app/models"
	"github.com/yeremiapane/mealbox-app/normalize"
	"github.com/yeremiapane/mealbox-app/utils"
)

type CustomerService struct {
	repo database.Repository
}

func NewCustomerService(repo database.Repository) *CustomerService {
	return &CustomerService{repo: repo}
}

type RegisterCustomerRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email"`
}

// Register creates a customer keyed by the normalized phone. A phone that
// already belongs to anyone, active or not, is a Conflict.
func (s *CustomerService) Register(ctx context.Context, req RegisterCustomerRequest) (*models.Customer, error) {
	phone, err := normalize.NormalizePhone(req.Phone)
	if err != nil {
		return nil, utils.WrapKind(utils.KindInvalidOperation, err, "invalid phone")
	}
	first := strings.TrimSpace(req.FirstName)
	if first == "" {
		return nil, utils.InvalidOperation("first name is required")
	}

	cust := &models.Customer{
		FirstName: first,
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     phone,
		IsActive:  true,
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		cust.Email = &email
	}
	if err := s.repo.CreateCustomer(ctx, cust); err != nil {
		if utils.IsKind(err, utils.KindConflict) {
			return nil, utils.WrapKind(utils.KindConflict, err, "phone %s is already registered", phone)
		}
		return nil, err
	}
	utils.InfoLogger.WithFields(logrus.Fields{"customer_id": cust.ID, "phone": phone}).Info("Customer registered")
	return cust, nil
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*models.Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *CustomerService) List(ctx context.Context, activeOnly bool) ([]models.Customer, error) {
	return s.repo.ListCustomers(ctx, activeOnly)
}

// Deactivate is a soft delete; the phone stays reserved.
func (s *CustomerService) Deactivate(ctx context.Context, id uint) (*models.Customer, error) {
	cust, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cust.IsActive {
		return cust, nil
	}
	cust.IsActive = false
	if err := s.repo.UpdateCustomer(ctx, cust); err != nil {
		return nil, err
	}
	utils.InfoLogger.WithField("customer_id", id).Info("Customer deactivated")
	return cust, nil
}
