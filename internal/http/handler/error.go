package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"weatherapp/internal/http/middleware"
	"weatherapp/internal/service"
	"weatherapp/internal/weather"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "CITY_REQUIRED", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// lookupErrorStatus maps a lookup failure to the status and code returned by the JSON API.
func lookupErrorStatus(err error) (int, string) {
	var httpErr *weather.HTTPError
	switch {
	case errors.Is(err, service.ErrCityRequired):
		return fiber.StatusBadRequest, "CITY_REQUIRED"
	case errors.As(err, &httpErr) && httpErr.StatusCode == fiber.StatusNotFound:
		return fiber.StatusNotFound, "CITY_NOT_FOUND"
	case errors.Is(err, weather.ErrTimeout):
		return fiber.StatusGatewayTimeout, "UPSTREAM_TIMEOUT"
	case errors.Is(err, weather.ErrConnection):
		return fiber.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE"
	default:
		return fiber.StatusBadGateway, "UPSTREAM_ERROR"
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
