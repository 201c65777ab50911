package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// degradedMessage is attached to 200 responses built from fallback data.
const degradedMessage = "storage unavailable, showing default data"

// Envelope wraps every response body.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func respond(c echo.Context, code int, data any, fallback bool) error {
	env := Envelope{Success: true, Data: data}
	if fallback {
		env.Message = degradedMessage
	}
	return c.JSON(code, env)
}

func respondOK(c echo.Context, data any, fallback bool) error {
	return respond(c, http.StatusOK, data, fallback)
}

// bindAndValidate decodes the body into req and runs struct validation. Both
// failures surface as 400.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
