package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header is the response (and accepted request) header carrying the RayID.
	Header = "X-Ray-ID"
	// LocalsKey is the fiber.Ctx locals key the RayID is stored under.
	LocalsKey = "ray_id"
)

// New returns a middleware assigning a RayID to every request. A valid UUID
// supplied by the caller in the X-Ray-ID header is reused.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if _, err := uuid.Parse(rid); err != nil {
			rid = uuid.NewString()
		}

		c.Locals(LocalsKey, rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
