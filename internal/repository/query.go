package repository

import "gorm.io/gorm"

// Filter restricts a query by equality on named columns.
type Filter map[string]any

// Query is a lazy, restrictable query over rows of T. Nothing touches the
// store until a terminal method (All, One) runs.
type Query[T any] struct {
	tx *gorm.DB
}

// Find starts a query over T, optionally restricted by equality predicates.
func Find[T any](c *Client, filter Filter) Query[T] {
	tx := c.db.Model(new(T))
	if len(filter) > 0 {
		tx = tx.Where(map[string]any(filter))
	}
	return Query[T]{tx: tx}
}

// Where adds an arbitrary condition, for the few places equality is not
// enough (date ranges, over_limit > 0).
func (q Query[T]) Where(cond string, args ...any) Query[T] {
	return Query[T]{tx: q.tx.Where(cond, args...)}
}

// Order sets the result order.
func (q Query[T]) Order(expr string) Query[T] {
	return Query[T]{tx: q.tx.Order(expr)}
}

// All returns every matching row, zero or more, in query order.
func (q Query[T]) All() ([]T, error) {
	var out []T
	if err := q.tx.Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// One returns exactly one matching row. Zero rows is ErrNotFound, more than
// one is ErrMultipleResults.
func (q Query[T]) One() (*T, error) {
	var out []T
	if err := q.tx.Limit(2).Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	switch len(out) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &out[0], nil
	default:
		return nil, ErrMultipleResults
	}
}
