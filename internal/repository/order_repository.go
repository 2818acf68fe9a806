package repository

import (
	"context"
	"time"

	"tailorbook/internal/models"
)

type OrderRepository interface {
	List(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetByCustomerID(ctx context.Context, customerID string) ([]models.Order, error)
	Create(ctx context.Context, input models.OrderInput) (*models.Order, error)
	Update(ctx context.Context, id string, patch models.OrderPatch) (*models.Order, error)
	// ToggleStatus flips pending and completed in a single read-modify-write.
	ToggleStatus(ctx context.Context, id string) (*models.Order, error)
	Delete(ctx context.Context, id string) error
}

// newOrder builds a stored order. Status always starts as pending and the
// deadline is kept in UTC.
func newOrder(id string, createdAt time.Time, input models.OrderInput) models.Order {
	return models.Order{
		ID:                 id,
		CustomerID:         input.CustomerID,
		Description:        input.Description,
		CustomMeasurements: models.CloneMeasurements(input.CustomMeasurements),
		Materials:          models.CloneStrings(input.Materials),
		Styles:             models.CloneStrings(input.Styles),
		Deadline:           input.Deadline.UTC(),
		Cost:               input.Cost,
		Notes:              input.Notes,
		Status:             models.OrderPending,
		CreatedAt:          createdAt,
	}
}

type orderRepository struct {
	coll *collection[models.Order]
	ids  IDGenerator
	now  func() time.Time
}

func (r *orderRepository) List(ctx context.Context) ([]models.Order, error) {
	return r.coll.list(ctx)
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	order, ok, err := r.coll.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("order", id)
	}
	return &order, nil
}

func (r *orderRepository) GetByCustomerID(ctx context.Context, customerID string) ([]models.Order, error) {
	orders, err := r.coll.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

// Create stores a new order. Status is always pending whatever the input says.
func (r *orderRepository) Create(ctx context.Context, input models.OrderInput) (*models.Order, error) {
	order := newOrder(r.ids.NewID(), r.now(), input)
	if err := r.coll.prepend(ctx, order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Update(ctx context.Context, id string, patch models.OrderPatch) (*models.Order, error) {
	order, err := r.coll.update(ctx, "order", id, func(o *models.Order) { patch.Apply(o) })
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ToggleStatus(ctx context.Context, id string) (*models.Order, error) {
	order, err := r.coll.update(ctx, "order", id, func(o *models.Order) { o.Status = o.Status.Toggle() })
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	return r.coll.remove(ctx, func(o models.Order) bool { return o.ID != id })
}

type gormOrderRepository struct {
	table *table[models.Order]
	ids   IDGenerator
	now   func() time.Time
}

func (r *gormOrderRepository) List(ctx context.Context) ([]models.Order, error) {
	return r.table.list(ctx, "")
}

func (r *gormOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	return r.table.get(ctx, "order", id)
}

func (r *gormOrderRepository) GetByCustomerID(ctx context.Context, customerID string) ([]models.Order, error) {
	return r.table.list(ctx, "customer_id = ?", customerID)
}

func (r *gormOrderRepository) Create(ctx context.Context, input models.OrderInput) (*models.Order, error) {
	order := newOrder(r.ids.NewID(), r.now(), input)
	if err := r.table.create(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) Update(ctx context.Context, id string, patch models.OrderPatch) (*models.Order, error) {
	return r.table.update(ctx, "order", id, func(o *models.Order) { patch.Apply(o) })
}

func (r *gormOrderRepository) ToggleStatus(ctx context.Context, id string) (*models.Order, error) {
	return r.table.update(ctx, "order", id, func(o *models.Order) { o.Status = o.Status.Toggle() })
}

func (r *gormOrderRepository) Delete(ctx context.Context, id string) error {
	return r.table.remove(ctx, "id = ?", id)
}
