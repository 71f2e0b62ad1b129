// Package store is the data store boundary of the loader.
package store

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

import (
	"context"
)

// Projection selects columns of a table, optionally joined and filtered.
type Projection struct {
	Table   string
	Columns []string
	Joins   []string
	Where   string
	Args    []any
	OrderBy string
}

// Store is everything the generation pipeline and the report façade need
// from the relational store.
type Store interface {
	// Count returns the number of rows in table.
	Count(ctx context.Context, table string) (int64, error)
	// Project scans the projected rows into dest (a pointer to a slice).
	Project(ctx context.Context, q Projection, dest any) error
	// Append bulk-inserts rows (a slice of models) into table. Rows get
	// their generated keys back.
	Append(ctx context.Context, table string, rows any) (int64, error)
	// RecomputeOrderTotals sets every order total to the sum of its items
	// in one statement and returns the number of orders touched.
	RecomputeOrderTotals(ctx context.Context) (int64, error)
	// CallProcedure invokes a stored procedure whose last parameter is a
	// JSON OUT parameter. A NULL result is returned as nil.
	CallProcedure(ctx context.Context, name string, args []any) ([]byte, error)
}
