package sales

import (
	"autoparts-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type CheckoutRequest struct {
	Lines       []store.CartRequestLine `json:"lines"`
	ClientName  string                  `json:"clientName"`
	ClientPhone string                  `json:"clientPhone"`
	PaidAmount  float64                 `json:"paidAmount"`
	// FullPayment ignores PaidAmount and settles the whole total.
	FullPayment bool `json:"fullPayment"`
}

// POST /api/pos/checkout
// Builds the cart from current stock and records it as a sales invoice.
func CheckoutHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CheckoutRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.ErrBadRequest
		}
		if body.PaidAmount < 0 {
			return fiber.ErrBadRequest
		}

		cart, err := st.NewCart(body.Lines)
		if err != nil {
			return err
		}
		in, err := cart.Checkout(body.ClientName, body.ClientPhone, body.PaidAmount, body.FullPayment)
		if err != nil {
			return err
		}

		inv, err := st.AddSalesInvoice(c.UserContext(), in)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(inv)
	}
}
