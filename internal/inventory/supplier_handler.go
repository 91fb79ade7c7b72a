package inventory

import (
	"strings"

	"autoparts-backend/internal/models"
	"autoparts-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GET /api/suppliers?q=
func ListSuppliersHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(st.SearchSuppliers(c.Query("q")))
	}
}

// POST /api/suppliers
func CreateSupplierHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body models.SupplierInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.ErrBadRequest
		}
		body.FullName = strings.TrimSpace(body.FullName)
		if body.FullName == "" {
			return fiber.ErrBadRequest
		}

		s, err := st.AddSupplier(c.UserContext(), body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(s)
	}
}

// PUT /api/suppliers/:id
func UpdateSupplierHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body models.SupplierPatch
		if err := c.BodyParser(&body); err != nil {
			return fiber.ErrBadRequest
		}

		s, err := st.UpdateSupplier(c.UserContext(), c.Params("id"), body)
		if err != nil {
			return err
		}
		return c.JSON(s)
	}
}

// DELETE /api/suppliers/:id
func DeleteSupplierHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := st.DeleteSupplier(c.UserContext(), c.Params("id")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/suppliers/:id/history
func SupplierHistoryHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		h, err := st.SupplierHistory(c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(h)
	}
}
