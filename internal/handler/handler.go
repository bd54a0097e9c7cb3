package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/gatherly-gateway/internal/models"
	"github.com/sefazor/gatherly-gateway/internal/session"
	"github.com/sefazor/gatherly-gateway/pkg/eventapi"
)

// respondError maps a controller failure onto the response the UI
// shows. Server-rejected requests keep the platform's status and
// message; transport failures become a 502 with the action-specific
// fallback text. Nothing here retries.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	var apiErr *eventapi.APIError
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = fallback
		}
		return c.Status(apiErr.StatusCode).JSON(models.ErrorResponse(message))
	}

	if errors.Is(err, session.ErrNotAuthenticated) {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authentication required"))
	}

	return c.Status(fiber.StatusBadGateway).JSON(models.ErrorResponse(fallback))
}

// parseID rejects malformed route ids locally, before any remote call.
func parseID(c *fiber.Ctx, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
