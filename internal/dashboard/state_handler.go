package dashboard

import (
	"autoparts-backend/internal/auth"
	"autoparts-backend/internal/models"
	"autoparts-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type StateResponse struct {
	store.Snapshot
	CurrentUser *models.User `json:"currentUser"`
	Loading     bool         `json:"loading"`
}

type LanguageRequest struct {
	Language models.Language `json:"language"`
}

// state reports the caller as the current user.
func state(c *fiber.Ctx, st *store.Store) StateResponse {
	res := StateResponse{Snapshot: st.Snapshot(), Loading: st.Loading()}
	if u, ok := auth.CurrentUser(c); ok {
		res.CurrentUser = &u
	}
	return res
}

// GET /api/state
func StateHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(state(c, st))
	}
}

// POST /api/refresh
// Collections that failed to load keep their previous contents; the response
// is the state after the refresh either way.
func RefreshHandler(st *store.Store, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := st.Refresh(c.UserContext()); err != nil {
			log.Warn("partial refresh", zap.Error(err))
		}
		return c.JSON(state(c, st))
	}
}

// PUT /api/language
func LanguageHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LanguageRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.ErrBadRequest
		}
		if err := st.SetLanguage(body.Language); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"language": st.Language()})
	}
}
