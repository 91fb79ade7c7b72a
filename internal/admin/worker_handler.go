package admin

import (
	"strings"

	"autoparts-backend/internal/models"
	"autoparts-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GET /api/admin/workers?q=
func ListWorkersHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(st.SearchWorkers(c.Query("q")))
	}
}

// POST /api/admin/workers
func CreateWorkerHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body models.WorkerInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.ErrBadRequest
		}

		body.FullName = strings.TrimSpace(body.FullName)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.FullName == "" || body.Email == "" {
			return fiber.ErrBadRequest
		}
		if body.PaymentType != nil && *body.PaymentType != models.PaymentDaily && *body.PaymentType != models.PaymentMonthly {
			return fiber.ErrBadRequest
		}

		w, err := st.AddWorker(c.UserContext(), body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(w)
	}
}

// PUT /api/admin/workers/:id
func UpdateWorkerHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body models.UserPatch
		if err := c.BodyParser(&body); err != nil {
			return fiber.ErrBadRequest
		}

		w, err := st.UpdateWorker(c.UserContext(), c.Params("id"), body)
		if err != nil {
			return err
		}
		return c.JSON(w)
	}
}

// DELETE /api/admin/workers/:id
func DeleteWorkerHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := st.DeleteWorker(c.UserContext(), c.Params("id")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/admin/worker-payments
func ListWorkerPaymentsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(st.WorkerPayments())
	}
}

// POST /api/admin/worker-payments
func CreateWorkerPaymentHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body models.WorkerPaymentInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.ErrBadRequest
		}
		if body.WorkerID == "" || body.Amount <= 0 {
			return fiber.ErrBadRequest
		}
		if _, ok := st.Worker(body.WorkerID); !ok {
			return fiber.ErrNotFound
		}

		p, err := st.RegisterWorkerPayment(c.UserContext(), body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// GET /api/admin/workers/:id/payments
func WorkerHistoryHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		h, err := st.WorkerHistory(c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(h)
	}
}
