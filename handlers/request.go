package handlers

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/fenilmodi00/ipo-tracker/uploads"
	"github.com/gofiber/fiber/v2"
)

// parseBody flattens the request body into a raw field map, whatever the
// content type, so payload coercion happens exactly once at the boundary.
func parseBody(c *fiber.Ctx) map[string]any {
	raw := map[string]any{}
	contentType := string(c.Request().Header.ContentType())

	switch {
	case strings.HasPrefix(contentType, fiber.MIMEApplicationJSON):
		_ = json.Unmarshal(c.Body(), &raw)
	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		if form, err := c.MultipartForm(); err == nil {
			for key, values := range form.Value {
				if len(values) > 0 {
					raw[key] = values[0]
				}
			}
		}
	default:
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			raw[string(key)] = string(value)
		})
	}

	return raw
}

// parseIDParam reads a numeric path parameter. A non-numeric value means the
// route answers 400.
func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// isUploadRejection reports whether an upload error is a client mistake
// (wrong field, wrong type, too big) rather than an I/O failure.
func isUploadRejection(err error) bool {
	return errors.Is(err, uploads.ErrUnexpectedField) ||
		errors.Is(err, uploads.ErrLogoNotImage) ||
		errors.Is(err, uploads.ErrDocumentNotPDF) ||
		errors.Is(err, uploads.ErrFileTooLarge)
}
