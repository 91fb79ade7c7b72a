package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"autoparts-backend/internal/gateway"
	"autoparts-backend/internal/models"
	"autoparts-backend/internal/naming"
	"autoparts-backend/internal/saga"
)

// AddPurchaseInvoice records a purchase and restocks the product it names:
// quantity is added and both prices are replaced by the invoice prices.
func (s *Store) AddPurchaseInvoice(ctx context.Context, in models.PurchaseInvoiceInput) (inv models.PurchaseInvoice, err error) {
	defer s.track("add_purchase_invoice", &err)

	product, known := s.Product(in.ProductID)

	sg := saga.New("add_purchase_invoice", s.policy, s.log)
	sg.Add(saga.Step{
		Name:     "insert invoice",
		Required: true,
		Do: func(ctx context.Context) error {
			var err error
			inv, err = insertOne[models.PurchaseInvoice](ctx, s.gw, tablePurchases, in,
				gateway.Row{"total_amount": in.Total()})
			return err
		},
		Undo: func(ctx context.Context) error {
			return deleteOne(ctx, s.gw, tablePurchases, inv.ID)
		},
	})
	if known {
		qty := product.CurrentQuantity + in.Quantity
		buy, sell := in.PurchasePrice, in.SellingPrice
		sg.Add(s.productStep("restock product", product,
			models.ProductPatch{CurrentQuantity: &qty, PurchasePrice: &buy, SellingPrice: &sell}))
	}

	done, err := sg.Run(ctx)
	if done > 0 {
		s.refreshAfter(ctx, "add_purchase_invoice")
	}
	if err != nil {
		return models.PurchaseInvoice{}, err
	}
	if fresh, ok := s.PurchaseInvoice(inv.ID); ok {
		inv = fresh
	}
	return inv, nil
}

// UpdatePurchaseInvoice edits an invoice and recomputes its total. Stock is not adjusted.
func (s *Store) UpdatePurchaseInvoice(ctx context.Context, id string, patch models.PurchaseInvoicePatch) (inv models.PurchaseInvoice, err error) {
	defer s.track("update_purchase_invoice", &err)

	cur, ok := s.PurchaseInvoice(id)
	if !ok {
		return models.PurchaseInvoice{}, fmt.Errorf("%s %s: %w", tablePurchases, id, ErrNotFound)
	}

	merged := cur.PurchaseInvoiceInput
	if patch.Quantity != nil {
		merged.Quantity = *patch.Quantity
	}
	if patch.PurchasePrice != nil {
		merged.PurchasePrice = *patch.PurchasePrice
	}
	total := merged.Total()
	patch.TotalAmount = &total

	inv, err = updateOne[models.PurchaseInvoice](ctx, s.gw, tablePurchases, id, patch)
	if err != nil {
		return models.PurchaseInvoice{}, err
	}
	s.mu.Lock()
	s.purchases = replaceWhere(s.purchases, func(v models.PurchaseInvoice) bool { return v.ID == id }, inv)
	s.mu.Unlock()

	s.refreshAfter(ctx, "update_purchase_invoice")
	return inv, nil
}

// DeletePurchaseInvoice removes the invoice. The restock it caused stays in
// place unless the store was built with WithRestoreStockOnDelete.
func (s *Store) DeletePurchaseInvoice(ctx context.Context, id string) (err error) {
	defer s.track("delete_purchase_invoice", &err)

	inv, known := s.PurchaseInvoice(id)

	sg := saga.New("delete_purchase_invoice", s.policy, s.log)
	step := saga.Step{
		Name:     "delete invoice",
		Required: true,
		Do: func(ctx context.Context) error {
			return deleteOne(ctx, s.gw, tablePurchases, id)
		},
	}
	if known {
		step.Undo = func(ctx context.Context) error {
			row, err := naming.Encode(inv)
			if err != nil {
				return err
			}
			_, err = s.gw.Insert(ctx, tablePurchases, row)
			return err
		}
	}
	sg.Add(step)

	if s.restoreStock && known {
		if product, ok := s.Product(inv.ProductID); ok {
			qty := max(0, product.CurrentQuantity-inv.Quantity)
			sg.Add(s.productStep("reverse restock", product, models.ProductPatch{CurrentQuantity: &qty}))
		}
	}

	done, err := sg.Run(ctx)
	if done > 0 {
		s.refreshAfter(ctx, "delete_purchase_invoice")
	}
	return err
}

// productStep updates product with patch; its undo writes back the stock and
// prices product had before.
func (s *Store) productStep(name string, product models.Product, patch models.ProductPatch) saga.Step {
	return saga.Step{
		Name: name + " " + product.ID,
		Do: func(ctx context.Context) error {
			_, err := s.UpdateProduct(ctx, product.ID, patch)
			return err
		},
		Undo: func(ctx context.Context) error {
			_, err := s.UpdateProduct(ctx, product.ID, product.SnapshotPatch())
			return err
		},
	}
}

// refreshAfter resynchronizes after a compound command. Failures are already
// logged per collection and do not change the command's outcome.
func (s *Store) refreshAfter(ctx context.Context, command string) {
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn("refresh after command incomplete", zap.String("command", command), zap.Error(err))
	}
}
