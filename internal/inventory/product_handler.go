package inventory

import (
	"strings"

	"autoparts-backend/internal/models"
	"autoparts-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GET /api/products?q=filtre
// q matches name, reference and barcode.
func ListProductsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(st.SearchProducts(c.Query("q")))
	}
}

// GET /api/products/:id
func GetProductHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := st.Product(c.Params("id"))
		if !ok {
			return fiber.ErrNotFound
		}
		return c.JSON(p)
	}
}

// POST /api/products
func CreateProductHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body models.ProductInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.ErrBadRequest
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || body.CurrentQuantity < 0 || body.InitialQuantity < 0 {
			return fiber.ErrBadRequest
		}

		p, err := st.AddProduct(c.UserContext(), body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// PUT /api/products/:id
func UpdateProductHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body models.ProductPatch
		if err := c.BodyParser(&body); err != nil {
			return fiber.ErrBadRequest
		}
		if body.CurrentQuantity != nil && *body.CurrentQuantity < 0 {
			return fiber.ErrBadRequest
		}

		p, err := st.UpdateProduct(c.UserContext(), c.Params("id"), body)
		if err != nil {
			return err
		}
		return c.JSON(p)
	}
}

// DELETE /api/products/:id
func DeleteProductHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := st.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
