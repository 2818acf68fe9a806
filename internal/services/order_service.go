package services

import (
	"context"

	"tailorbook/internal/models"
	"tailorbook/internal/repository"
)

type OrderService interface {
	CreateOrder(ctx context.Context, input models.OrderInput) (*models.Order, error)
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	GetOrdersByCustomer(ctx context.Context, customerID string) ([]models.Order, error)
	GetOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	UpdateOrder(ctx context.Context, id string, patch models.OrderPatch) (*models.Order, error)
	SetStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
	ToggleStatus(ctx context.Context, id string) (*models.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	Counts(ctx context.Context) (StatusCounts, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

func (s *orderService) CreateOrder(ctx context.Context, input models.OrderInput) (*models.Order, error) {
	return s.orderRepo.Create(ctx, input)
}

func (s *orderService) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

func (s *orderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.List(ctx)
}

// GetOrdersByCustomer returns the customer's orders newest first.
func (s *orderService) GetOrdersByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	orders, err := s.orderRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	SortNewestFirst(orders)
	return orders, nil
}

func (s *orderService) GetOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByStatus(orders, status), nil
}

func (s *orderService) UpdateOrder(ctx context.Context, id string, patch models.OrderPatch) (*models.Order, error) {
	return s.orderRepo.Update(ctx, id, patch)
}

func (s *orderService) SetStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, &InvalidStatusError{Status: status}
	}
	return s.orderRepo.Update(ctx, id, models.OrderPatch{Status: &status})
}

func (s *orderService) ToggleStatus(ctx context.Context, id string) (*models.Order, error) {
	return s.orderRepo.ToggleStatus(ctx, id)
}

func (s *orderService) DeleteOrder(ctx context.Context, id string) error {
	return s.orderRepo.Delete(ctx, id)
}

func (s *orderService) Counts(ctx context.Context) (StatusCounts, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return StatusCounts{}, err
	}
	return CountByStatus(orders), nil
}
