package imports

import (
	"errors"

	"stock-reconciler/core/logger"
	"stock-reconciler/core/sources/secondary"
	"stock-reconciler/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for imports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = storage.Object{}
	return &Handler{service: service}
}

// RegisterRoutes registers the import routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/imports")
	group.Post("/", h.HandleUpload)
	group.Get("/", h.HandleList)
	group.Delete("/:name", h.HandleDelete)
}

// HandleUpload stores a secondary warehouse import.
// @Summary Upload Import
// @Description Uploads a CSV or XLSX export with the columns SKU, Balance and InOrder. The file is parsed before it is stored.
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Import file"
// @Success 201 {object} Info "Stored import"
// @Failure 400 {object} map[string]string "Invalid file"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /imports [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "multipart field 'file' is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	defer f.Close()

	info, err := h.service.Upload(c.UserContext(), fh.Filename, f)
	if err != nil {
		if isInvalidImport(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Import upload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(info)
}

// HandleList lists stored imports.
// @Summary List Imports
// @Description Lists the stored secondary warehouse imports, newest first.
// @Tags imports
// @Produce json
// @Success 200 {array} storage.Object "Imports"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /imports [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	objects, err := h.service.List(c.UserContext())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Listing imports failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(objects)
}

// HandleDelete removes a stored import.
// @Summary Delete Import
// @Tags imports
// @Param name path string true "Import file name"
// @Success 204 "Deleted"
// @Failure 400 {object} map[string]string "Invalid name"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /imports/{name} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("name")); err != nil {
		if isInvalidImport(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func isInvalidImport(err error) bool {
	var missing *secondary.MissingColumnError
	var badRow *secondary.RowError
	return errors.As(err, &missing) ||
		errors.As(err, &badRow) ||
		errors.Is(err, secondary.ErrInvalidImportName) ||
		errors.Is(err, secondary.ErrUnsupportedFormat) ||
		errors.Is(err, secondary.ErrEmptyImport)
}
