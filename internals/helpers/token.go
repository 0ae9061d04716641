// file: internals/helpers/token.go
package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"workdesk_backend/internals/constants"
)

// GetUserIDFromToken reads the principal id stored by the auth middleware.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing user id")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid user id")
	}
	return id, nil
}

// GetUserRole returns the role claim, empty when absent.
func GetUserRole(c *fiber.Ctx) string {
	role, _ := c.Locals("userRole").(string)
	return role
}

// IsAdmin reports whether the requester carries the privileged role.
func IsAdmin(c *fiber.Ctx) bool {
	return GetUserRole(c) == constants.RoleAdmin
}

// GetEmployeeIDFromToken returns the employee identity linked to the
// requester's account, or nil when the account has none.
func GetEmployeeIDFromToken(c *fiber.Ctx) *uuid.UUID {
	raw, ok := c.Locals("employee_id").(string)
	if !ok || raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

var ErrNoEmployeeIdentity = errors.New("account has no linked employee")
