package handler

import (
	"net/http"

	"quizauth/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports that the process is serving requests.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, "Service is healthy", map[string]string{"status": "ok"})
}
