package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/gatherly-gateway/internal/controller"
	"github.com/sefazor/gatherly-gateway/internal/models"
)

type AdminHandler struct {
	adminController *controller.AdminController
}

func NewAdminHandler(adminController *controller.AdminController) *AdminHandler {
	return &AdminHandler{
		adminController: adminController,
	}
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.adminController.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err, "Could not load statistics")
	}
	return c.JSON(models.SuccessResponse(stats, ""))
}

func (h *AdminHandler) Timeseries(c *fiber.Ctx) error {
	points, err := h.adminController.Timeseries(c.UserContext(), c.Query("period"))
	if err != nil {
		return respondError(c, err, "Could not load statistics")
	}
	return c.JSON(models.SuccessResponse(points, ""))
}

func (h *AdminHandler) Users(c *fiber.Ctx) error {
	query := models.UserListQuery{
		Query:   c.Query("q"),
		Role:    models.UserRole(c.Query("role")),
		Page:    c.QueryInt("page"),
		PerPage: c.QueryInt("per_page"),
	}

	page, err := h.adminController.Users(c.UserContext(), query)
	if err != nil {
		return respondError(c, err, "Could not load users")
	}
	return c.JSON(models.SuccessResponse(page, ""))
}
