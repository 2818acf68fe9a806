package repository

import (
	"context"
	"time"

	"tailorbook/internal/models"
)

type CustomerRepository interface {
	List(ctx context.Context) ([]models.Customer, error)
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	Create(ctx context.Context, input models.CustomerInput) (*models.Customer, error)
	Update(ctx context.Context, id string, patch models.CustomerPatch) (*models.Customer, error)
	Delete(ctx context.Context, id string) error
}

func newCustomer(id string, createdAt time.Time, input models.CustomerInput) models.Customer {
	return models.Customer{
		ID:           id,
		Name:         input.Name,
		Phone:        input.Phone,
		Photo:        input.Photo,
		Measurements: models.CloneMeasurements(input.Measurements),
		Description:  input.Description,
		CreatedAt:    createdAt,
	}
}

type customerRepository struct {
	coll *collection[models.Customer]
	ids  IDGenerator
	now  func() time.Time
}

func (r *customerRepository) List(ctx context.Context) ([]models.Customer, error) {
	return r.coll.list(ctx)
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	customer, ok, err := r.coll.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("customer", id)
	}
	return &customer, nil
}

func (r *customerRepository) Create(ctx context.Context, input models.CustomerInput) (*models.Customer, error) {
	customer := newCustomer(r.ids.NewID(), r.now(), input)
	if err := r.coll.prepend(ctx, customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Update(ctx context.Context, id string, patch models.CustomerPatch) (*models.Customer, error) {
	customer, err := r.coll.update(ctx, "customer", id, func(c *models.Customer) { patch.Apply(c) })
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Delete removes the customer only. Their orders keep the now dangling customer id.
func (r *customerRepository) Delete(ctx context.Context, id string) error {
	return r.coll.remove(ctx, func(c models.Customer) bool { return c.ID != id })
}

type gormCustomerRepository struct {
	table *table[models.Customer]
	ids   IDGenerator
	now   func() time.Time
}

func (r *gormCustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	return r.table.list(ctx, "")
}

func (r *gormCustomerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	return r.table.get(ctx, "customer", id)
}

func (r *gormCustomerRepository) Create(ctx context.Context, input models.CustomerInput) (*models.Customer, error) {
	customer := newCustomer(r.ids.NewID(), r.now(), input)
	if err := r.table.create(ctx, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *gormCustomerRepository) Update(ctx context.Context, id string, patch models.CustomerPatch) (*models.Customer, error) {
	return r.table.update(ctx, "customer", id, func(c *models.Customer) { patch.Apply(c) })
}

func (r *gormCustomerRepository) Delete(ctx context.Context, id string) error {
	return r.table.remove(ctx, "id = ?", id)
}
