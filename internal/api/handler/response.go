package handler

import "github.com/labstack/echo/v4"

// apiResponse is the uniform envelope for every response. Errors use the
// same shape with Success=false and a null Data, rendered centrally by
// the HTTP error handler.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func respond(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, apiResponse{Success: true, Message: message, Data: data})
}
