package handlers

import "github.com/labstack/echo/v4"

// Response is the JSON envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondData(c echo.Context, code int, data any) error {
	return c.JSON(code, Response{Success: true, Data: data})
}

func respondOK(c echo.Context, code int) error {
	return c.JSON(code, Response{Success: true})
}

func respondError(c echo.Context, code int, message string) error {
	return c.JSON(code, Response{Success: false, Error: message})
}
