package store

import (
	"slices"
	"strings"

	"autoparts-backend/internal/models"
)

// SearchProducts matches name and reference case-insensitively and barcode as typed.
// An empty term returns every product.
func (s *Store) SearchProducts(term string) []models.Product {
	products := s.Products()
	if term == "" {
		return products
	}
	return filter(products, func(p models.Product) bool { return productMatches(p, term) })
}

// SearchPurchaseInvoices matches the invoice's product or supplier. Newest first.
func (s *Store) SearchPurchaseInvoices(term string) []models.PurchaseInvoice {
	s.mu.RLock()
	products := make(map[string]models.Product, len(s.products))
	for _, p := range s.products {
		products[p.ID] = p
	}
	suppliers := make(map[string]models.Supplier, len(s.suppliers))
	for _, v := range s.suppliers {
		suppliers[v.ID] = v
	}
	invoices := slices.Clone(s.purchases)
	s.mu.RUnlock()

	lower := strings.ToLower(term)
	out := filter(invoices, func(inv models.PurchaseInvoice) bool {
		if term == "" {
			return true
		}
		if p, ok := products[inv.ProductID]; ok && productMatches(p, term) {
			return true
		}
		v, ok := suppliers[inv.SupplierID]
		return ok && strings.Contains(strings.ToLower(v.FullName), lower)
	})
	slices.SortStableFunc(out, func(a, b models.PurchaseInvoice) int { return b.Date.Compare(a.Date) })
	return out
}

// SearchSalesInvoices matches the client name or the invoice id. Newest first.
func (s *Store) SearchSalesInvoices(term string) []models.SalesInvoice {
	lower := strings.ToLower(term)
	out := filter(s.SalesInvoices(), func(inv models.SalesInvoice) bool {
		if inv.ClientName != nil && strings.Contains(strings.ToLower(*inv.ClientName), lower) {
			return true
		}
		return strings.Contains(strings.ToLower(inv.ID), lower)
	})
	slices.SortStableFunc(out, func(a, b models.SalesInvoice) int { return b.Date.Compare(a.Date) })
	return out
}

func (s *Store) SearchSuppliers(term string) []models.Supplier {
	lower := strings.ToLower(term)
	return filter(s.Suppliers(), func(v models.Supplier) bool {
		return strings.Contains(strings.ToLower(v.FullName), lower) || strings.Contains(v.Phone, term)
	})
}

func (s *Store) SearchWorkers(term string) []models.User {
	lower := strings.ToLower(term)
	return filter(s.Workers(), func(w models.User) bool {
		if strings.Contains(strings.ToLower(w.FullName), lower) {
			return true
		}
		return w.Phone != nil && strings.Contains(*w.Phone, term)
	})
}

func productMatches(p models.Product, term string) bool {
	lower := strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), lower) ||
		strings.Contains(p.Barcode, term) ||
		strings.Contains(strings.ToLower(p.Reference), lower)
}

func filter[T any](list []T, keep func(T) bool) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
