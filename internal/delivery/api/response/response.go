// Package response renders the JSON envelope shared by every endpoint.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, message string, data any) error {
	return c.JSON(statusCode, Envelope{
		Error:   false,
		Message: message,
		Data:    data,
	})
}

// Error returns an error response. Error responses never carry data.
func Error(c echo.Context, statusCode int, message string) error {
	if c.Request().Method == http.MethodHead {
		return c.NoContent(statusCode)
	}

	return c.JSON(statusCode, Envelope{
		Error:   true,
		Message: message,
	})
}

// InternalServerError returns the generic 500 response.
func InternalServerError(c echo.Context) error {
	return Error(c, http.StatusInternalServerError, "Internal server error")
}
