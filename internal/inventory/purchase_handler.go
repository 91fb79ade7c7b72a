package inventory

import (
	"autoparts-backend/internal/models"
	"autoparts-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GET /api/purchase-invoices?q=
// q matches the product or supplier name.
func ListPurchaseInvoicesHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(st.SearchPurchaseInvoices(c.Query("q")))
	}
}

// POST /api/purchase-invoices
// Records the purchase and restocks the product at the new prices.
func CreatePurchaseInvoiceHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body models.PurchaseInvoiceInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.ErrBadRequest
		}
		if body.ProductID == "" || body.Quantity <= 0 || body.PurchasePrice < 0 || body.SellingPrice < 0 {
			return fiber.ErrBadRequest
		}

		inv, err := st.AddPurchaseInvoice(c.UserContext(), body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(inv)
	}
}

// PUT /api/purchase-invoices/:id
func UpdatePurchaseInvoiceHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body models.PurchaseInvoicePatch
		if err := c.BodyParser(&body); err != nil {
			return fiber.ErrBadRequest
		}
		if body.Quantity != nil && *body.Quantity <= 0 {
			return fiber.ErrBadRequest
		}

		inv, err := st.UpdatePurchaseInvoice(c.UserContext(), c.Params("id"), body)
		if err != nil {
			return err
		}
		return c.JSON(inv)
	}
}

// DELETE /api/purchase-invoices/:id
func DeletePurchaseInvoiceHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := st.DeletePurchaseInvoice(c.UserContext(), c.Params("id")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
