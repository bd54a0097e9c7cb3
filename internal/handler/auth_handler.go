package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/gatherly-gateway/internal/controller"
	"github.com/sefazor/gatherly-gateway/internal/models"
	"github.com/sefazor/gatherly-gateway/pkg/utils"
)

type AuthHandler struct {
	authController *controller.AuthController
	validator      *utils.Validator
}

func NewAuthHandler(authController *controller.AuthController, validator *utils.Validator) *AuthHandler {
	return &AuthHandler{
		authController: authController,
		validator:      validator,
	}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	sess, err := h.authController.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Login failed")
	}

	return c.JSON(models.SuccessResponse(sess, "Login successful"))
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	sess, err := h.authController.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Registration failed")
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(sess, "User registered successfully"))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authController.Logout(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Logout failed"))
	}
	return c.JSON(models.SuccessResponse(nil, "Logged out"))
}

// Session lets the UI shell decide what to render without a remote call.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return c.JSON(models.SuccessResponse(h.authController.Session(), ""))
}
