package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// RequestIDHeader is the standard header name used to propagate request IDs.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is the key used to store the request ID in Fiber's context locals.
	RequestIDLocalKey = "request_id"
)

// RequestID ensures every request has a request ID.
//
// Behavior:
// - Reads X-Request-ID from the incoming request header, generating a UUID when missing.
// - Stores the value in Fiber context locals under RequestIDLocalKey.
// - Echoes it in the X-Request-ID response header.
// - Tags the active server span (if any) with http.request_id.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// The header value aliases fiber's reusable buffer; the span outlives the request.
		id := utils.CopyString(c.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		if span := trace.SpanFromContext(c.UserContext()); span.IsRecording() {
			span.SetAttributes(attribute.String("http.request_id", id))
		}
		return c.Next()
	}
}

// RequestIDFromCtx returns the request ID stored by RequestID, or "".
func RequestIDFromCtx(c *fiber.Ctx) string {
	if s, ok := c.Locals(RequestIDLocalKey).(string); ok {
		return s
	}
	return ""
}
