package store

import (
	"context"

	"autoparts-backend/internal/models"
)

func (s *Store) AddProduct(ctx context.Context, in models.ProductInput) (p models.Product, err error) {
	defer s.track("add_product", &err)

	p, err = insertOne[models.Product](ctx, s.gw, tableProducts, in, nil)
	if err != nil {
		return models.Product{}, err
	}
	s.mu.Lock()
	s.products = prepend(s.products, p)
	s.mu.Unlock()
	return p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (p models.Product, err error) {
	defer s.track("update_product", &err)

	p, err = updateOne[models.Product](ctx, s.gw, tableProducts, id, patch)
	if err != nil {
		return models.Product{}, err
	}
	s.mu.Lock()
	s.products = replaceWhere(s.products, func(v models.Product) bool { return v.ID == id }, p)
	s.mu.Unlock()
	return p, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) (err error) {
	defer s.track("delete_product", &err)

	if err = deleteOne(ctx, s.gw, tableProducts, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.products = removeWhere(s.products, func(v models.Product) bool { return v.ID == id })
	s.mu.Unlock()
	return nil
}
