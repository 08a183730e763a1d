package middleware

import (
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"weatherapp/internal/logging"
)

// Logger logs each HTTP request as one JSON line through log.
// Fields: request_id, method, path, status, latency (milliseconds, float).
func Logger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// The global ErrorHandler writes the status after this middleware returns.
		status := c.Response().StatusCode()
		if err != nil {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		// Path only, without the query string: the query carries the city.
		log.Info("http_request",
			zap.String("request_id", RequestIDFromCtx(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Float64("latency", float64(time.Since(start).Microseconds())/1000),
		)
		return err
	}
}

// LoggerWithWriter is Logger writing to w with timestamps in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(logging.EncoderConfig(loc)),
		zapcore.AddSync(w),
		zapcore.InfoLevel,
	)
	return Logger(zap.New(core))
}
