package middleware

import (
	"strings"

	"github.com/mukkoticf/twilight-investors-dashboard/internal/actor"

	"github.com/gofiber/fiber/v2"
)

const actorLocal = "actor"

// ActorExtractor reads the admin marker header set by the trusted proxy in
// front of this service and stores the actor in Locals. Authentication
// itself happens outside this service.
func ActorExtractor(adminHeader string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdmin := strings.EqualFold(c.Get(adminHeader), "true")
		c.Locals(actorLocal, actor.Actor{IsAdmin: isAdmin})
		return c.Next()
	}
}

// GetActor returns the request actor. Defaults to a non-admin actor.
func GetActor(c *fiber.Ctx) actor.Actor {
	if a, ok := c.Locals(actorLocal).(actor.Actor); ok {
		return a
	}
	return actor.Actor{}
}

// RequireAdmin rejects non-admin actors before the handler runs.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !GetActor(c).IsAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Admin access required")
		}
		return c.Next()
	}
}
