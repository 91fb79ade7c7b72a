package dashboard

import (
	"time"

	"autoparts-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// GET /api/dashboard/summary
func SummaryHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(st.Dashboard())
	}
}

// GET /api/dashboard/report?from=2025-01-01&to=2025-01-31
// Both dates are days (UTC); to is included. Missing dates default to today.
func ReportHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		today := time.Now().UTC().Format(dateLayout)

		from, err := time.Parse(dateLayout, c.Query("from", today))
		if err != nil {
			return fiber.ErrBadRequest
		}
		to, err := time.Parse(dateLayout, c.Query("to", today))
		if err != nil {
			return fiber.ErrBadRequest
		}

		r, err := st.Report(from, to)
		if err != nil {
			return fiber.ErrBadRequest
		}
		return c.JSON(r)
	}
}
