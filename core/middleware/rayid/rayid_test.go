package rayid

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(seen *string) *fiber.App {
	app := fiber.New()
	app.Use(New())
	app.Get("/", func(c *fiber.Ctx) error {
		*seen, _ = c.Locals(LocalsKey).(string)
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestNew_GeneratesID(t *testing.T) {
	var seen string
	resp, err := newApp(&seen).Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	rid := resp.Header.Get(Header)
	_, perr := uuid.Parse(rid)
	assert.NoError(t, perr)
	assert.Equal(t, rid, seen)
}

func TestNew_ReusesCallerID(t *testing.T) {
	var seen string
	id := uuid.NewString()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(Header, id)

	resp, err := newApp(&seen).Test(req)
	require.NoError(t, err)
	assert.Equal(t, id, resp.Header.Get(Header))
	assert.Equal(t, id, seen)
}

func TestNew_ReplacesInvalidID(t *testing.T) {
	var seen string
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(Header, "not a uuid")

	resp, err := newApp(&seen).Test(req)
	require.NoError(t, err)
	assert.NotEqual(t, "not a uuid", resp.Header.Get(Header))
	assert.Equal(t, resp.Header.Get(Header), seen)
}
