package auth

import (
	"strings"

	"autoparts-backend/internal/models"
	"autoparts-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	// Identifier is an email or a bare username.
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func LoginHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.ErrBadRequest
		}

		ident := body.Identifier
		if strings.TrimSpace(ident) == "" {
			ident = body.Email
		}

		res := st.Login(c.UserContext(), ident, body.Password)
		if !res.Success {
			return c.Status(fiber.StatusUnauthorized).JSON(res)
		}
		return c.JSON(res)
	}
}

// POST /api/auth/signup
func SignUpHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SignUpRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.ErrBadRequest
		}
		if strings.TrimSpace(body.Email) == "" || body.Password == "" {
			return fiber.ErrBadRequest
		}

		res := st.SignUp(c.UserContext(), body.Username, body.Email, body.Password)
		if !res.Success {
			return c.Status(fiber.StatusBadRequest).JSON(res)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// POST /api/auth/logout
func LogoutHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := st.Logout(c.UserContext(), token(c)); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		return c.JSON(user)
	}
}

// PUT /api/auth/me
func UpdateMeHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch models.UserPatch
		if err := c.BodyParser(&patch); err != nil {
			return fiber.ErrBadRequest
		}

		cur, ok := CurrentUser(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		user, err := st.UpdateProfile(c.UserContext(), cur, patch)
		if err != nil {
			return err
		}
		return c.JSON(user)
	}
}
