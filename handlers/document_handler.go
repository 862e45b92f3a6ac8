package handlers

import (
	"github.com/fenilmodi00/ipo-tracker/models"
	"github.com/fenilmodi00/ipo-tracker/services"
	"github.com/fenilmodi00/ipo-tracker/uploads"
	"github.com/gofiber/fiber/v2"
)

type DocumentHandler struct {
	Service *services.DocumentService
	Uploads *uploads.Manager
}

func NewDocumentHandler(service *services.DocumentService, uploads *uploads.Manager) *DocumentHandler {
	return &DocumentHandler{Service: service, Uploads: uploads}
}

func (h *DocumentHandler) GetIPODocuments(c *fiber.Ctx) error {
	ipoID, ok := parseIDParam(c, "ipoId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid IPO ID",
		})
	}

	docs, err := h.Service.GetByIPOID(c.Context(), ipoID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    docs,
	})
}

// UploadDocuments stores the rhpPdf/drhpPdf file fields and creates one
// document row pointing at them. Files already written are removed again when
// a later step of the same request fails.
func (h *DocumentHandler) UploadDocuments(c *fiber.Ctx) error {
	ipoID, ok := parseIDParam(c, "ipoId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid IPO ID",
		})
	}

	stored := map[string]string{}
	cleanup := func() {
		for _, path := range stored {
			h.Uploads.Remove(path)
		}
	}

	for _, field := range []string{"rhpPdf", "drhpPdf"} {
		file, err := c.FormFile(field)
		if err != nil || file == nil {
			continue
		}
		path, err := h.Uploads.Save(field, file)
		if err != nil {
			cleanup()
			if isUploadRejection(err) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"success": false,
					"error":   err.Error(),
				})
			}
			return err
		}
		stored[field] = path
	}

	raw := map[string]any{"ipoId": ipoID}
	for field, path := range stored {
		raw[field] = h.Uploads.PublicURL(path)
	}

	doc, verr := models.ValidateInsertDocument(raw)
	if verr != nil {
		cleanup()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   verr.Error(),
		})
	}

	if err := h.Service.Create(c.Context(), doc); err != nil {
		cleanup()
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    doc,
	})
}

func (h *DocumentHandler) UpdateDocument(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid document ID",
		})
	}

	changes, verr := models.ValidateUpdateDocument(parseBody(c))
	if verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   verr.Error(),
		})
	}

	doc, err := h.Service.Update(c.Context(), id, changes)
	if err != nil {
		return err
	}
	if doc == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Document not found",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    doc,
	})
}

func (h *DocumentHandler) DeleteDocument(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid document ID",
		})
	}

	deleted, err := h.Service.Delete(c.Context(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Document not found",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
