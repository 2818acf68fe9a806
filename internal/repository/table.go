package repository

import (
	"context"
	"errors"

	"tailorbook/internal/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// newestFirst matches the prepend order of the document store. Rows created in
// the same instant keep their id order, so seeded albums list as album-1..3.
const newestFirst = "created_at DESC, id ASC"

// table is the relational counterpart of collection: one gorm model per entity.
type table[T any] struct {
	db       *gorm.DB
	name     string
	notifier *Notifier
}

func newTable[T any](db *gorm.DB, notifier *Notifier, name string) *table[T] {
	return &table[T]{db: db, name: name, notifier: notifier}
}

func (t *table[T]) fail(op string, err error) error {
	return &storage.Error{Op: op, Key: t.name, Err: err}
}

func (t *table[T]) list(ctx context.Context, query string, args ...any) ([]T, error) {
	rows := []T{}
	q := t.db.WithContext(ctx).Order(newestFirst)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, t.fail("load", err)
	}
	return rows, nil
}

func (t *table[T]) get(ctx context.Context, entity, id string) (*T, error) {
	var row T
	err := t.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(entity, id)
	}
	if err != nil {
		return nil, t.fail("load", err)
	}
	return &row, nil
}

func (t *table[T]) create(ctx context.Context, row *T) error {
	if err := t.db.WithContext(ctx).Create(row).Error; err != nil {
		return t.fail("save", err)
	}
	t.notifier.Publish(t.name)
	return nil
}

// update locks the row, applies fn and saves it in one transaction.
func (t *table[T]) update(ctx context.Context, entity, id string, fn func(*T)) (*T, error) {
	var row T
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&row).Error; err != nil {
			return err
		}
		fn(&row)
		return tx.Save(&row).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(entity, id)
	}
	if err != nil {
		return nil, t.fail("save", err)
	}
	t.notifier.Publish(t.name)
	return &row, nil
}

// remove deletes matching rows; nothing is published when none matched.
func (t *table[T]) remove(ctx context.Context, query string, args ...any) error {
	res := t.db.WithContext(ctx).Where(query, args...).Delete(new(T))
	if res.Error != nil {
		return t.fail("save", res.Error)
	}
	if res.RowsAffected > 0 {
		t.notifier.Publish(t.name)
	}
	return nil
}
