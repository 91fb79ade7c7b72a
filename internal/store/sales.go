package store

import (
	"context"
	"fmt"

	"autoparts-backend/internal/gateway"
	"autoparts-backend/internal/models"
	"autoparts-backend/internal/naming"
	"autoparts-backend/internal/saga"
)

// AddSalesInvoice writes the invoice header, its items and the initial payment,
// then takes every sold quantity out of stock (never below zero).
func (s *Store) AddSalesInvoice(ctx context.Context, in models.SalesInvoiceInput) (inv models.SalesInvoice, err error) {
	defer s.track("add_sales_invoice", &err)

	var header models.SalesInvoice
	sg := saga.New("add_sales_invoice", s.policy, s.log)
	sg.Add(saga.Step{
		Name:     "insert header",
		Required: true,
		Do: func(ctx context.Context) error {
			var err error
			header, err = insertOne[models.SalesInvoice](ctx, s.gw, tableSales, in.Header(), nil)
			return err
		},
		Undo: func(ctx context.Context) error {
			return deleteOne(ctx, s.gw, tableSales, header.ID)
		},
	})
	if len(in.Items) > 0 {
		sg.Add(saga.Step{
			Name: "insert items",
			Do: func(ctx context.Context) error {
				rows := make([]gateway.Row, 0, len(in.Items))
				for _, it := range in.Items {
					row, err := naming.Encode(models.SalesItem{
						InvoiceID:   header.ID,
						ProductID:   it.ProductID,
						ProductName: it.ProductName,
						Quantity:    it.Quantity,
						Price:       it.Price,
					})
					if err != nil {
						return err
					}
					rows = append(rows, row)
				}
				_, err := s.gw.Insert(ctx, tableSalesItems, rows...)
				return err
			},
			Undo: func(ctx context.Context) error {
				return s.gw.Delete(ctx, tableSalesItems, gateway.Row{"invoice_id": header.ID})
			},
		})
	}
	sg.Add(saga.Step{
		Name: "insert initial payment",
		Do: func(ctx context.Context) error {
			row, err := naming.Encode(models.SalesPaymentInput{InvoiceID: header.ID, Amount: in.PaidAmount})
			if err != nil {
				return err
			}
			_, err = s.gw.Insert(ctx, tableSalesPayments, row)
			return err
		},
		Undo: func(ctx context.Context) error {
			return s.gw.Delete(ctx, tableSalesPayments, gateway.Row{"invoice_id": header.ID})
		},
	})

	// Quantities are taken from the in-memory products as they were when the
	// command started. Repeated lines for one product accumulate.
	remaining := map[string]int{}
	for _, it := range in.Items {
		product, ok := s.Product(it.ProductID)
		if !ok {
			continue
		}
		cur, seen := remaining[product.ID]
		if !seen {
			cur = product.CurrentQuantity
		}
		qty := max(0, cur-it.Quantity)
		remaining[product.ID] = qty
		sg.Add(s.productStep("take stock", product, models.ProductPatch{CurrentQuantity: &qty}))
	}

	done, err := sg.Run(ctx)
	if done > 0 {
		s.refreshAfter(ctx, "add_sales_invoice")
	}
	if err != nil {
		return models.SalesInvoice{}, err
	}
	if fresh, ok := s.SalesInvoice(header.ID); ok {
		return fresh, nil
	}
	return header, nil
}

// DeleteSalesInvoice removes the invoice with its items and payments. Stock is
// given back only when the store was built with WithRestoreStockOnDelete.
func (s *Store) DeleteSalesInvoice(ctx context.Context, id string) (err error) {
	defer s.track("delete_sales_invoice", &err)

	inv, known := s.SalesInvoice(id)

	sg := saga.New("delete_sales_invoice", s.policy, s.log)
	step := saga.Step{
		Name:     "delete invoice",
		Required: true,
		Do: func(ctx context.Context) error {
			return deleteOne(ctx, s.gw, tableSales, id)
		},
	}
	if known {
		step.Undo = func(ctx context.Context) error {
			return s.reinsertSale(ctx, inv)
		}
	}
	sg.Add(step)

	if s.restoreStock && known {
		restored := map[string]int{}
		for _, it := range inv.Items {
			product, ok := s.Product(it.ProductID)
			if !ok {
				continue
			}
			cur, seen := restored[product.ID]
			if !seen {
				cur = product.CurrentQuantity
			}
			qty := cur + it.Quantity
			restored[product.ID] = qty
			sg.Add(s.productStep("give back stock", product, models.ProductPatch{CurrentQuantity: &qty}))
		}
	}

	done, err := sg.Run(ctx)
	if done > 0 {
		s.refreshAfter(ctx, "delete_sales_invoice")
	}
	return err
}

// PayDebt records a payment against an invoice and settles its debt.
func (s *Store) PayDebt(ctx context.Context, invoiceID string, amount float64) (inv models.SalesInvoice, err error) {
	defer s.track("pay_debt", &err)

	cur, known := s.SalesInvoice(invoiceID)

	var payment models.PaymentHistory
	sg := saga.New("pay_debt", s.policy, s.log)
	sg.Add(saga.Step{
		Name:     "insert payment",
		Required: true,
		Do: func(ctx context.Context) error {
			var err error
			payment, err = insertOne[models.PaymentHistory](ctx, s.gw, tableSalesPayments,
				models.SalesPaymentInput{InvoiceID: invoiceID, Amount: amount}, nil)
			return err
		},
		Undo: func(ctx context.Context) error {
			return deleteOne(ctx, s.gw, tableSalesPayments, payment.ID)
		},
	})
	if known {
		sg.Add(saga.Step{
			Name: "settle debt",
			Do: func(ctx context.Context) error {
				_, err := updateOne[models.SalesInvoice](ctx, s.gw, tableSales, invoiceID, cur.Settle(amount))
				return err
			},
			Undo: func(ctx context.Context) error {
				_, err := updateOne[models.SalesInvoice](ctx, s.gw, tableSales, invoiceID,
					models.DebtSettlement{PaidAmount: cur.PaidAmount, DebtAmount: cur.DebtAmount})
				return err
			},
		})
	}

	done, err := sg.Run(ctx)
	if done > 0 {
		s.refreshAfter(ctx, "pay_debt")
	}
	if err != nil {
		return models.SalesInvoice{}, err
	}
	inv, ok := s.SalesInvoice(invoiceID)
	if !ok {
		return models.SalesInvoice{}, fmt.Errorf("%s %s: %w", tableSales, invoiceID, ErrNotFound)
	}
	return inv, nil
}

func (s *Store) reinsertSale(ctx context.Context, inv models.SalesInvoice) error {
	header, err := naming.Encode(inv)
	if err != nil {
		return err
	}
	if _, err := s.gw.Insert(ctx, tableSales, header); err != nil {
		return err
	}

	children := make([]gateway.Row, 0, len(inv.Items))
	for _, it := range inv.Items {
		row, err := naming.Encode(it)
		if err != nil {
			return err
		}
		children = append(children, row)
	}
	if len(children) > 0 {
		if _, err := s.gw.Insert(ctx, tableSalesItems, children...); err != nil {
			return err
		}
	}

	payments := make([]gateway.Row, 0, len(inv.PaymentHistory))
	for _, p := range inv.PaymentHistory {
		row, err := naming.Encode(p)
		if err != nil {
			return err
		}
		payments = append(payments, row)
	}
	if len(payments) > 0 {
		if _, err := s.gw.Insert(ctx, tableSalesPayments, payments...); err != nil {
			return err
		}
	}
	return nil
}
