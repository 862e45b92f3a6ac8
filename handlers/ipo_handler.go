package handlers

import (
	"github.com/fenilmodi00/ipo-tracker/models"
	"github.com/fenilmodi00/ipo-tracker/services"
	"github.com/gofiber/fiber/v2"
)

type IPOHandler struct {
	Service *services.IPOService
}

func NewIPOHandler(service *services.IPOService) *IPOHandler {
	return &IPOHandler{Service: service}
}

func (h *IPOHandler) GetIPOs(c *fiber.Ctx) error {
	status := c.Query("status")

	var (
		ipos []models.IPOWithCompany
		err  error
	)
	if status != "" {
		ipos, err = h.Service.GetByStatus(c.Context(), status)
	} else {
		ipos, err = h.Service.GetAll(c.Context())
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    ipos,
	})
}

func (h *IPOHandler) GetIPOByID(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid IPO ID",
		})
	}

	ipo, err := h.Service.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	if ipo == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "IPO not found",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    ipo,
	})
}

func (h *IPOHandler) CreateIPO(c *fiber.Ctx) error {
	ipo, verr := models.ValidateInsertIPO(parseBody(c))
	if verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   verr.Error(),
		})
	}

	if err := h.Service.Create(c.Context(), ipo); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    ipo,
	})
}

func (h *IPOHandler) UpdateIPO(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid IPO ID",
		})
	}

	changes, verr := models.ValidateUpdateIPO(parseBody(c))
	if verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   verr.Error(),
		})
	}

	ipo, err := h.Service.Update(c.Context(), id, changes)
	if err != nil {
		return err
	}
	if ipo == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "IPO not found",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    ipo,
	})
}

func (h *IPOHandler) DeleteIPO(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid IPO ID",
		})
	}

	deleted, err := h.Service.Delete(c.Context(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "IPO not found",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
