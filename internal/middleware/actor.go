package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/helpdesk/internal/actor"
	"github.com/localnerve/helpdesk/internal/utils"
)

// ActorHeader names the acting user on a request
const ActorHeader = "X-User-Id"

// ActorMiddleware reads the acting user id from the X-User-Id header, or the
// userId query parameter, and stores it in the user context. Requests without
// one proceed anonymously.
func ActorMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(ActorHeader)
		if raw == "" {
			raw = c.Query("userId")
		}
		if raw == "" {
			return c.Next()
		}

		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return utils.BadRequestResponse(c, "invalid acting user id "+strconv.Quote(raw))
		}

		c.Locals("userId", id)
		c.SetUserContext(actor.WithUser(c.UserContext(), id))
		return c.Next()
	}
}
