package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/gatherly-gateway/internal/controller"
	"github.com/sefazor/gatherly-gateway/internal/models"
)

type FileHandler struct {
	fileController *controller.FileController
}

func NewFileHandler(fileController *controller.FileController) *FileHandler {
	return &FileHandler{
		fileController: fileController,
	}
}

// Upload accepts one image from the browser and forwards it to the
// platform's upload endpoint.
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("No file uploaded"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Could not read the uploaded file"))
	}
	defer file.Close()

	eventID := uint(c.QueryInt("event_id"))

	result, err := h.fileController.Upload(c.UserContext(), fileHeader.Filename, file, eventID)
	if err != nil {
		return respondError(c, err, "Upload failed")
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(result, "Image uploaded successfully"))
}

func (h *FileHandler) EventFiles(c *fiber.Ctx) error {
	eventID, ok := parseID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	files, err := h.fileController.EventFiles(c.UserContext(), eventID)
	if err != nil {
		return respondError(c, err, "Could not load files")
	}
	return c.JSON(models.SuccessResponse(files, ""))
}

func (h *FileHandler) Delete(c *fiber.Ctx) error {
	filename := c.Params("filename")
	if filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid filename"))
	}

	eventID := uint(c.QueryInt("event_id"))

	if err := h.fileController.Delete(c.UserContext(), filename, eventID); err != nil {
		return respondError(c, err, "File deletion failed")
	}
	return c.JSON(models.SuccessResponse(nil, "File deleted"))
}
