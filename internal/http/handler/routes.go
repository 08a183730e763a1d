package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"weatherapp/docs"
	"weatherapp/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// apiKeyConfigured drives the readiness probe; gatherer backs /metrics.
func RegisterRoutes(app *fiber.App, apiKeyConfigured bool, weatherSvc service.WeatherService, gatherer prometheus.Gatherer) {
	app.Get("/", Index(weatherSvc))
	app.Get("/api/weather", GetWeather(weatherSvc))

	app.Get("/health", HealthCheck(apiKeyConfigured))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.Send(docs.OpenAPI)
	})
	app.Get("/docs", Docs())
}

// Index renders the weather form. Submitting it sends ?city=..., in which
// case the labels are filled from a lookup; a failed lookup still renders 200
// with the error message in the temperature label.
func Index(weatherSvc service.WeatherService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data := pageData{}
		if c.Context().QueryArgs().Has("city") {
			// Copied: fiber reuses the request buffer after the handler returns.
			data.City = utils.CopyString(c.Query("city"))
			report, err := weatherSvc.Lookup(c.UserContext(), data.City)
			data.Display = service.Present(report, err)
		}

		body, err := renderPage(data)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		c.Type("html", "utf-8")
		return c.Send(body)
	}
}

// GetWeather godoc
// @Summary      Current weather for a city
// @Description  Looks up current conditions and returns the temperature in Celsius, a condition emoji and a description.
// @Tags         weather
// @Produce      json
// @Param        city  query     string  true  "City name"
// @Success      200   {object}  model.Report
// @Failure      400   {object}  errorPayload
// @Failure      404   {object}  errorPayload
// @Failure      502   {object}  errorPayload
// @Failure      503   {object}  errorPayload
// @Failure      504   {object}  errorPayload
// @Router       /api/weather [get]
func GetWeather(weatherSvc service.WeatherService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := weatherSvc.Lookup(c.UserContext(), utils.CopyString(c.Query("city")))
		if err != nil {
			status, code := lookupErrorStatus(err)
			return writeError(c, status, code, service.ErrorMessage(err))
		}
		return c.JSON(report)
	}
}

// HealthCheck reports readiness: the service cannot answer lookups without an API key.
func HealthCheck(apiKeyConfigured bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !apiKeyConfigured {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "weather api key not configured")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200 while the process is serving.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// Docs serves a Swagger UI page backed by /openapi.yaml.
func Docs() fiber.Handler {
	const html = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Weather API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
	return func(c *fiber.Ctx) error {
		return c.Type("html").SendString(html)
	}
}
