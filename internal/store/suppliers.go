package store

import (
	"context"

	"autoparts-backend/internal/models"
)

func (s *Store) AddSupplier(ctx context.Context, in models.SupplierInput) (v models.Supplier, err error) {
	defer s.track("add_supplier", &err)

	v, err = insertOne[models.Supplier](ctx, s.gw, tableSuppliers, in, nil)
	if err != nil {
		return models.Supplier{}, err
	}
	s.mu.Lock()
	s.suppliers = prepend(s.suppliers, v)
	s.mu.Unlock()
	return v, nil
}

func (s *Store) UpdateSupplier(ctx context.Context, id string, patch models.SupplierPatch) (v models.Supplier, err error) {
	defer s.track("update_supplier", &err)

	v, err = updateOne[models.Supplier](ctx, s.gw, tableSuppliers, id, patch)
	if err != nil {
		return models.Supplier{}, err
	}
	s.mu.Lock()
	s.suppliers = replaceWhere(s.suppliers, func(x models.Supplier) bool { return x.ID == id }, v)
	s.mu.Unlock()
	return v, nil
}

func (s *Store) DeleteSupplier(ctx context.Context, id string) (err error) {
	defer s.track("delete_supplier", &err)

	if err = deleteOne(ctx, s.gw, tableSuppliers, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.suppliers = removeWhere(s.suppliers, func(x models.Supplier) bool { return x.ID == id })
	s.mu.Unlock()
	return nil
}
