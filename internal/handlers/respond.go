package handlers

import (
	"log"
	"net/http"

	"restomart/internal/common"

	"github.com/labstack/echo/v4"
)

// respondData wraps every successful payload in the {success, data} envelope.
func respondData(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

// respondError maps the domain error taxonomy onto HTTP statuses. Unexpected
// errors are logged and surfaced as an opaque 500.
func respondError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := err.Error()

	switch common.KindOf(err) {
	case common.KindNotFound:
		status = http.StatusNotFound
	case common.KindConflict, common.KindInUse:
		status = http.StatusConflict
	case common.KindValidation:
		status = http.StatusBadRequest
	default:
		log.Printf("Unexpected error handling %s %s: %v", c.Request().Method, c.Path(), err)
		message = "internal server error"
	}

	return c.JSON(status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
