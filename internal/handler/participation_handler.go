package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/gatherly-gateway/internal/controller"
	"github.com/sefazor/gatherly-gateway/internal/models"
	"github.com/sefazor/gatherly-gateway/pkg/utils"
)

type ParticipationHandler struct {
	participationController *controller.ParticipationController
	validator               *utils.Validator
}

func NewParticipationHandler(participationController *controller.ParticipationController, validator *utils.Validator) *ParticipationHandler {
	return &ParticipationHandler{
		participationController: participationController,
		validator:               validator,
	}
}

// Join submits a registration or waitlist request; the platform picks
// which. A capacity race surfaces as the server's rejection message and
// the next read re-resolves from fresh state.
func (h *ParticipationHandler) Join(c *fiber.Ctx) error {
	eventID, ok := parseID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	var req models.JoinEventRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
		}
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	participation, err := h.participationController.Join(c.UserContext(), eventID, req.Notes)
	if err != nil {
		return respondError(c, err, "Could not join the event")
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(participation, "Joined event"))
}

func (h *ParticipationHandler) Leave(c *fiber.Ctx) error {
	eventID, ok := parseID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	if err := h.participationController.Leave(c.UserContext(), eventID); err != nil {
		return respondError(c, err, "Could not cancel your participation")
	}
	return c.JSON(models.SuccessResponse(nil, "Participation cancelled"))
}

func (h *ParticipationHandler) MyParticipations(c *fiber.Ctx) error {
	participations, err := h.participationController.Mine(c.UserContext())
	if err != nil {
		return respondError(c, err, "Could not load your participations")
	}
	return c.JSON(models.SuccessResponse(participations, ""))
}

func (h *ParticipationHandler) Roster(c *fiber.Ctx) error {
	eventID, ok := parseID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	roster, err := h.participationController.Roster(c.UserContext(), eventID)
	if err != nil {
		return respondError(c, err, "Could not load participants")
	}
	return c.JSON(models.SuccessResponse(roster, ""))
}

func (h *ParticipationHandler) CheckInQR(c *fiber.Ctx) error {
	eventID, ok := parseID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	png, err := h.participationController.CheckInQR(c.UserContext(), eventID, c.QueryInt("size"))
	if err != nil {
		if errors.Is(err, controller.ErrNoCheckInCode) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("No check-in code for this event"))
		}
		return respondError(c, err, "Could not render the check-in code")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
