package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

var errMissingUserID = errors.New("user id missing from context")

// parseProfileUserID pulls the authenticated user's id out of the request
// locals set by the auth middleware.
func parseProfileUserID(c *fiber.Ctx) (int64, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return 0, errMissingUserID
	}
	return strconv.ParseInt(userIDStr, 10, 64)
}

func isCoach(c *fiber.Ctx) bool {
	role, ok := c.Locals("role").(string)
	return ok && role == "coach"
}
