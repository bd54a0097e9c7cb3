package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/gatherly-gateway/internal/controller"
	"github.com/sefazor/gatherly-gateway/internal/models"
	"github.com/sefazor/gatherly-gateway/pkg/utils"
)

type EventHandler struct {
	eventController *controller.EventController
	validator       *utils.Validator
}

func NewEventHandler(eventController *controller.EventController, validator *utils.Validator) *EventHandler {
	return &EventHandler{
		eventController: eventController,
		validator:       validator,
	}
}

func parseFilters(c *fiber.Ctx) models.EventFilters {
	filters := models.EventFilters{
		CategoryID: uint(c.QueryInt("category_id")),
		DateFrom:   c.Query("date_from"),
		DateTo:     c.Query("date_to"),
		Query:      c.Query("q"),
		Page:       c.QueryInt("page"),
		PerPage:    c.QueryInt("per_page"),
	}
	if raw := c.Query("min_price"); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MinPrice = &price
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MaxPrice = &price
		}
	}
	return filters
}

func (h *EventHandler) Browse(c *fiber.Ctx) error {
	list, err := h.eventController.Browse(c.UserContext(), parseFilters(c))
	if err != nil {
		return respondError(c, err, "Could not load events")
	}
	return c.JSON(models.SuccessResponse(list, ""))
}

// Detail returns the event along with the participation state resolved
// for whoever is logged in right now.
func (h *EventHandler) Detail(c *fiber.Ctx) error {
	eventID, ok := parseID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	details, err := h.eventController.Detail(c.UserContext(), eventID)
	if err != nil {
		return respondError(c, err, "Could not load event")
	}
	return c.JSON(models.SuccessResponse(details, ""))
}

func (h *EventHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Search query is required"))
	}

	list, err := h.eventController.Search(c.UserContext(), query)
	if err != nil {
		return respondError(c, err, "Search failed")
	}
	return c.JSON(models.SuccessResponse(list, ""))
}

func (h *EventHandler) Filters(c *fiber.Ctx) error {
	filters, err := h.eventController.Filters(c.UserContext())
	if err != nil {
		return respondError(c, err, "Could not load filters")
	}
	return c.JSON(models.SuccessResponse(filters, ""))
}

func (h *EventHandler) Popular(c *fiber.Ctx) error {
	events, err := h.eventController.Popular(c.UserContext())
	if err != nil {
		return respondError(c, err, "Could not load popular events")
	}
	return c.JSON(models.SuccessResponse(events, ""))
}

func (h *EventHandler) MyEvents(c *fiber.Ctx) error {
	events, err := h.eventController.Mine(c.UserContext())
	if err != nil {
		return respondError(c, err, "Could not load your events")
	}
	return c.JSON(models.SuccessResponse(events, ""))
}

func (h *EventHandler) Create(c *fiber.Ctx) error {
	var req models.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	event, err := h.eventController.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Event creation failed")
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(event, "Event created successfully"))
}

func (h *EventHandler) Update(c *fiber.Ctx) error {
	eventID, ok := parseID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	var req models.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	event, err := h.eventController.Update(c.UserContext(), eventID, req)
	if err != nil {
		return respondError(c, err, "Event update failed")
	}
	return c.JSON(models.SuccessResponse(event, "Event updated successfully"))
}

func (h *EventHandler) Delete(c *fiber.Ctx) error {
	eventID, ok := parseID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	if err := h.eventController.Delete(c.UserContext(), eventID); err != nil {
		return respondError(c, err, "Event deletion failed")
	}
	return c.JSON(models.SuccessResponse(nil, "Event successfully deleted"))
}
