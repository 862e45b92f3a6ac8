package handlers

import (
	"github.com/fenilmodi00/ipo-tracker/models"
	"github.com/fenilmodi00/ipo-tracker/services"
	"github.com/fenilmodi00/ipo-tracker/uploads"
	"github.com/gofiber/fiber/v2"
)

type CompanyHandler struct {
	Service *services.CompanyService
	Uploads *uploads.Manager
}

func NewCompanyHandler(service *services.CompanyService, uploads *uploads.Manager) *CompanyHandler {
	return &CompanyHandler{Service: service, Uploads: uploads}
}

func (h *CompanyHandler) GetCompanies(c *fiber.Ctx) error {
	companies, err := h.Service.GetAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    companies,
	})
}

func (h *CompanyHandler) GetCompanyByID(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid company ID",
		})
	}

	company, err := h.Service.GetWithIPOs(c.Context(), id)
	if err != nil {
		return err
	}
	if company == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Company not found",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    company,
	})
}

// saveLogo stores an optional logo file field and returns its path, or ""
// when the request carries none.
func (h *CompanyHandler) saveLogo(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("logo")
	if err != nil || file == nil {
		return "", nil
	}
	return h.Uploads.Save("logo", file)
}

func (h *CompanyHandler) CreateCompany(c *fiber.Ctx) error {
	logoPath, err := h.saveLogo(c)
	if err != nil {
		if isUploadRejection(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
		return err
	}

	raw := parseBody(c)
	if logoPath != "" {
		raw["logo"] = h.Uploads.PublicURL(logoPath)
	}

	company, verr := models.ValidateInsertCompany(raw)
	if verr != nil {
		h.Uploads.Remove(logoPath)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   verr.Error(),
		})
	}

	if err := h.Service.Create(c.Context(), company); err != nil {
		h.Uploads.Remove(logoPath)
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    company,
	})
}

func (h *CompanyHandler) UpdateCompany(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid company ID",
		})
	}

	logoPath, err := h.saveLogo(c)
	if err != nil {
		if isUploadRejection(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
		return err
	}

	raw := parseBody(c)
	if logoPath != "" {
		raw["logo"] = h.Uploads.PublicURL(logoPath)
	}

	changes, verr := models.ValidateUpdateCompany(raw)
	if verr != nil {
		h.Uploads.Remove(logoPath)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   verr.Error(),
		})
	}

	company, err := h.Service.Update(c.Context(), id, changes)
	if err != nil {
		h.Uploads.Remove(logoPath)
		return err
	}
	if company == nil {
		h.Uploads.Remove(logoPath)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Company not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    company,
	})
}

func (h *CompanyHandler) DeleteCompany(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid company ID",
		})
	}

	deleted, err := h.Service.Delete(c.Context(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Company not found",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
