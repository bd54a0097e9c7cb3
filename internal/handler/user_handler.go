package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/gatherly-gateway/internal/controller"
	"github.com/sefazor/gatherly-gateway/internal/models"
	"github.com/sefazor/gatherly-gateway/pkg/utils"
)

type UserHandler struct {
	authController *controller.AuthController
	validator      *utils.Validator
}

func NewUserHandler(authController *controller.AuthController, validator *utils.Validator) *UserHandler {
	return &UserHandler{
		authController: authController,
		validator:      validator,
	}
}

func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	user, err := h.authController.Profile(c.UserContext())
	if err != nil {
		return respondError(c, err, "Could not load your profile")
	}
	return c.JSON(models.SuccessResponse(user, ""))
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	user, err := h.authController.UpdateProfile(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Profile update failed")
	}

	return c.JSON(models.SuccessResponse(user, "Profile updated successfully"))
}
