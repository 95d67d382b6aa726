package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Middleware guards a route group: it validates the bearer token through
// ValidateToken and exposes the account id as c.Locals("user_id").
func (s *Service) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerFromHeader(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "sign in required")
		}

		userID, err := s.ValidateToken(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}

func bearerFromHeader(header string) string {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return token
}
