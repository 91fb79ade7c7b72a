package sales

import (
	"autoparts-backend/internal/models"
	"autoparts-backend/internal/receipt"
	"autoparts-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type PaymentRequest struct {
	Amount float64 `json:"amount"`
}

// GET /api/sales-invoices?q=
// q matches the client name or the invoice id.
func ListSalesInvoicesHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(st.SearchSalesInvoices(c.Query("q")))
	}
}

// GET /api/sales-invoices/:id
func GetSalesInvoiceHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inv, ok := st.SalesInvoice(c.Params("id"))
		if !ok {
			return fiber.ErrNotFound
		}
		return c.JSON(inv)
	}
}

// POST /api/sales-invoices
func CreateSalesInvoiceHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body models.SalesInvoiceInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.ErrBadRequest
		}
		if body.TotalAmount < 0 || body.PaidAmount < 0 {
			return fiber.ErrBadRequest
		}
		for _, it := range body.Items {
			if it.Quantity <= 0 {
				return fiber.ErrBadRequest
			}
		}

		inv, err := st.AddSalesInvoice(c.UserContext(), body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(inv)
	}
}

// DELETE /api/sales-invoices/:id
func DeleteSalesInvoiceHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := st.DeleteSalesInvoice(c.UserContext(), c.Params("id")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/sales-invoices/:id/payments
// Pays part or all of the invoice debt.
func PayDebtHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.ErrBadRequest
		}
		if body.Amount <= 0 {
			return fiber.ErrBadRequest
		}

		inv, err := st.PayDebt(c.UserContext(), c.Params("id"), body.Amount)
		if err != nil {
			return err
		}
		return c.JSON(inv)
	}
}

// GET /api/sales-invoices/:id/pdf
func ReceiptHandler(st *store.Store, shop receipt.Shop) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inv, ok := st.SalesInvoice(c.Params("id"))
		if !ok {
			return fiber.ErrNotFound
		}

		pdf, err := receipt.Render(shop, inv)
		if err != nil {
			return err
		}

		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `inline; filename="`+receipt.FileName(inv)+`"`)
		return c.Send(pdf)
	}
}
