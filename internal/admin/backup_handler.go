package admin

import (
	"bytes"
	"time"

	"autoparts-backend/internal/i18n"
	"autoparts-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GET /api/admin/backup
// Downloads the in-memory state as a JSON document.
func BackupHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := st.Backup(&buf); err != nil {
			return err
		}

		c.Attachment(store.BackupFileName(time.Now()))
		return c.Send(buf.Bytes())
	}
}

// POST /api/admin/restore
// Replaces the in-memory state with an uploaded backup. Storage is not written.
func RestoreHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := c.Body()
		if fh, err := c.FormFile("file"); err == nil {
			f, err := fh.Open()
			if err != nil {
				return fiber.ErrBadRequest
			}
			defer f.Close()

			var buf bytes.Buffer
			if _, err := buf.ReadFrom(f); err != nil {
				return fiber.ErrBadRequest
			}
			body = buf.Bytes()
		}

		if err := st.Restore(bytes.NewReader(body)); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, i18n.T(string(st.Language()), "backup.invalid"))
		}
		return c.JSON(st.Snapshot())
	}
}
