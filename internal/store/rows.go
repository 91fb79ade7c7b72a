package store

import (
	"context"
	"errors"
	"fmt"

	"autoparts-backend/internal/gateway"
	"autoparts-backend/internal/naming"
)

func fetch[T naming.Schema](ctx context.Context, gw gateway.Gateway, q gateway.Query) ([]T, error) {
	rows, err := gw.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	return naming.DecodeAll[T](rows)
}

// insertOne encodes in, inserts it and decodes the stored row as T.
func insertOne[T naming.Schema, In naming.Schema](ctx context.Context, gw gateway.Gateway, table string, in In, extra gateway.Row) (T, error) {
	var zero T
	row, err := naming.Encode(in)
	if err != nil {
		return zero, err
	}
	for k, v := range extra {
		row[k] = v
	}

	rows, err := gw.Insert(ctx, table, row)
	if err != nil {
		return zero, fmt.Errorf("insert %s: %w", table, err)
	}
	if len(rows) == 0 {
		return zero, fmt.Errorf("insert %s: no row returned", table)
	}
	return naming.Decode[T](rows[0])
}

// updateOne applies patch to the row with id and decodes the stored row as T.
func updateOne[T naming.Schema, P naming.Schema](ctx context.Context, gw gateway.Gateway, table, id string, patch P) (T, error) {
	var zero T
	row, err := naming.Encode(patch)
	if err != nil {
		return zero, err
	}

	rows, err := gw.Update(ctx, table, row, gateway.ByID(id))
	if errors.Is(err, gateway.ErrNoRows) {
		return zero, fmt.Errorf("%s %s: %w", table, id, ErrNotFound)
	}
	if err != nil {
		return zero, fmt.Errorf("update %s %s: %w", table, id, err)
	}
	if len(rows) == 0 {
		return zero, fmt.Errorf("%s %s: %w", table, id, ErrNotFound)
	}
	return naming.Decode[T](rows[0])
}

func deleteOne(ctx context.Context, gw gateway.Gateway, table, id string) error {
	if err := gw.Delete(ctx, table, gateway.ByID(id)); err != nil {
		return fmt.Errorf("delete %s %s: %w", table, id, err)
	}
	return nil
}
