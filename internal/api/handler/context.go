package handler

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// pathUserID reads the :userId route parameter. Services reject an empty id.
func pathUserID(c echo.Context) string {
	return strings.TrimSpace(c.Param("userId"))
}
