package server

import (
	"errors"

	"autoparts-backend/internal/i18n"
	"autoparts-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler turns handler errors into {"error": message} responses in the
// store's current language.
func ErrorHandler(st *store.Store, log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code, key := classify(err)

		msg := i18n.T(string(st.Language()), key)
		var fe *fiber.Error
		if key == "" && errors.As(err, &fe) {
			msg = fe.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
}

// classify maps err to a status and a message key. An empty key keeps the
// message of a *fiber.Error built with fiber.NewError.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, fiber.ErrBadRequest):
		return fiber.StatusBadRequest, "request.invalid"
	case errors.Is(err, fiber.ErrUnauthorized), errors.Is(err, store.ErrNotAuthenticated):
		return fiber.StatusUnauthorized, "auth.required"
	case errors.Is(err, fiber.ErrForbidden):
		return fiber.StatusForbidden, "auth.forbidden"
	case errors.Is(err, fiber.ErrNotFound), errors.Is(err, store.ErrNotFound):
		return fiber.StatusNotFound, "not_found"
	case errors.Is(err, store.ErrUnsupportedLanguage):
		return fiber.StatusBadRequest, "language.invalid"
	case errors.Is(err, store.ErrOutOfStock):
		return fiber.StatusConflict, "cart.out_of_stock"
	case errors.Is(err, store.ErrEmptyCart):
		return fiber.StatusBadRequest, "cart.empty"
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, ""
	}
	return fiber.StatusBadGateway, "storage.failed"
}
