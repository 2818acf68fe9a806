package services

import (
	"context"

	"tailorbook/internal/models"
	"tailorbook/internal/repository"
	"tailorbook/pkg/whatsapp"
)

type CustomerService interface {
	// NewCustomerDraft returns the measurement slots a new customer starts with.
	NewCustomerDraft(ctx context.Context) (models.CustomerInput, error)
	CreateCustomer(ctx context.Context, input models.CustomerInput) (*models.Customer, error)
	GetCustomerByID(ctx context.Context, id string) (*models.Customer, error)
	GetAllCustomers(ctx context.Context) ([]models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, patch models.CustomerPatch) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
	GetCustomerDetails(ctx context.Context, id string) (*CustomerDetails, error)
	ContactLinks(ctx context.Context, id string) (whatsapp.Links, error)
}

// CustomerDetails is the customer page: the record, their orders newest first,
// and the badge counts.
type CustomerDetails struct {
	Customer models.Customer `json:"customer"`
	Orders   []models.Order  `json:"orders"`
	Counts   StatusCounts    `json:"counts"`
	Links    whatsapp.Links  `json:"links"`
}

type customerService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	settingsRepo repository.SettingsRepository
	phones       *whatsapp.Formatter
}

func NewCustomerService(
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	settingsRepo repository.SettingsRepository,
	phones *whatsapp.Formatter,
) CustomerService {
	if phones == nil {
		phones = whatsapp.NewFormatter(whatsapp.DefaultCountryCode)
	}
	return &customerService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		settingsRepo: settingsRepo,
		phones:       phones,
	}
}

func (s *customerService) NewCustomerDraft(ctx context.Context) (models.CustomerInput, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return models.CustomerInput{}, err
	}
	measurements := models.CloneMeasurements(settings.DefaultMeasurements)
	if measurements == nil {
		measurements = []models.Measurement{}
	}
	return models.CustomerInput{Measurements: measurements}, nil
}

// CreateCustomer fills in the stored measurement template when the caller sent
// no measurements at all. The template is copied, so later template edits never
// reach existing customers.
func (s *customerService) CreateCustomer(ctx context.Context, input models.CustomerInput) (*models.Customer, error) {
	if input.Measurements == nil {
		draft, err := s.NewCustomerDraft(ctx)
		if err != nil {
			return nil, err
		}
		input.Measurements = draft.Measurements
	}
	return s.customerRepo.Create(ctx, input)
}

func (s *customerService) GetCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) GetAllCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.customerRepo.List(ctx)
}

func (s *customerService) UpdateCustomer(ctx context.Context, id string, patch models.CustomerPatch) (*models.Customer, error) {
	return s.customerRepo.Update(ctx, id, patch)
}

// DeleteCustomer leaves the customer's orders in place as order history.
func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	return s.customerRepo.Delete(ctx, id)
}

func (s *customerService) GetCustomerDetails(ctx context.Context, id string) (*CustomerDetails, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.GetByCustomerID(ctx, id)
	if err != nil {
		return nil, err
	}
	SortNewestFirst(orders)
	return &CustomerDetails{
		Customer: *customer,
		Orders:   orders,
		Counts:   CountByStatus(orders),
		Links:    s.phones.Links(customer.Phone),
	}, nil
}

func (s *customerService) ContactLinks(ctx context.Context, id string) (whatsapp.Links, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return whatsapp.Links{}, err
	}
	return s.phones.Links(customer.Phone), nil
}
