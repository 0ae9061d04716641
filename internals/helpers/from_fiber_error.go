package helper

import "github.com/gofiber/fiber/v2"

// FromFiberError renders a service error (usually *fiber.Error) through
// the consistent JSON envelope. Anything else becomes a plain 500 so no
// storage-engine text leaks to the client.
func FromFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
}
