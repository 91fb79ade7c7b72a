package auth

import (
	"strings"

	"autoparts-backend/internal/models"
	"autoparts-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

const (
	CtxUserKey     = "user"
	CtxUserRoleKey = "user_role"
	CtxTokenKey    = "token"
)

// RequireSession authenticates the bearer token of every request.
func RequireSession(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return fiber.ErrUnauthorized
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		user, err := st.Authenticate(c.UserContext(), token)
		if err != nil {
			return err
		}

		c.Locals(CtxUserKey, user)
		c.Locals(CtxUserRoleKey, user.Role)
		c.Locals(CtxTokenKey, token)
		return c.Next()
	}
}

func RequireRole(allowedRoles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(CtxUserRoleKey).(models.Role)
		if !ok {
			return fiber.ErrForbidden
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return fiber.ErrForbidden
	}
}

// CurrentUser reads the user RequireSession stored on the request.
func CurrentUser(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals(CtxUserKey).(models.User)
	return user, ok
}

func token(c *fiber.Ctx) string {
	t, _ := c.Locals(CtxTokenKey).(string)
	return t
}
