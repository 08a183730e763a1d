package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"weatherapp/internal/model"
	"weatherapp/internal/weather"
)

// kelvinOffset is 0°C expressed in Kelvin.
const kelvinOffset = 273.15

var ErrCityRequired = errors.New("city is required")

// Lookup outcomes, used as the "outcome" label of weather_lookups_total.
const (
	OutcomeSuccess          = "success"
	OutcomeInvalidInput     = "invalid_input"
	OutcomeHTTPError        = "http_error"
	OutcomeConnectionError  = "connection_error"
	OutcomeTimeout          = "timeout"
	OutcomeTooManyRedirects = "too_many_redirects"
	OutcomeRequestError     = "request_error"
)

// WeatherService defines the current-weather use case.
type WeatherService interface {
	// Lookup fetches current conditions for city and converts them for display.
	// Errors are ErrCityRequired or the weather package taxonomy.
	Lookup(ctx context.Context, city string) (*model.Report, error)
}

type weatherService struct {
	provider weather.Provider
	log      *zap.Logger
	tracer   trace.Tracer
	lookups  *prometheus.CounterVec
}

// NewWeatherService constructs a WeatherService and registers its lookup counter on reg.
func NewWeatherService(provider weather.Provider, log *zap.Logger, reg prometheus.Registerer) (WeatherService, error) {
	if log == nil {
		log = zap.NewNop()
	}
	lookups := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_lookups_total",
			Help: "Total number of current-weather lookups by outcome.",
		},
		[]string{"outcome"},
	)
	if err := reg.Register(lookups); err != nil {
		return nil, fmt.Errorf("register lookup metrics: %w", err)
	}
	return &weatherService{
		provider: provider,
		log:      log,
		tracer:   otel.Tracer("weatherapp/internal/service"),
		lookups:  lookups,
	}, nil
}

func (s *weatherService) Lookup(ctx context.Context, city string) (*model.Report, error) {
	city = strings.TrimSpace(city)

	ctx, span := s.tracer.Start(ctx, "WeatherService.Lookup", trace.WithAttributes(attribute.String("weather.city", city)))
	defer span.End()

	if city == "" {
		s.lookups.WithLabelValues(OutcomeInvalidInput).Inc()
		span.SetStatus(codes.Error, ErrCityRequired.Error())
		return nil, ErrCityRequired
	}

	obs, err := s.provider.Current(ctx, city)
	if err != nil {
		outcome := Outcome(err)
		s.lookups.WithLabelValues(outcome).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		s.log.Warn("weather lookup failed",
			zap.String("city", city),
			zap.String("outcome", outcome),
			zap.Error(err),
		)
		return nil, err
	}

	celsius := obs.Kelvin - kelvinOffset
	report := &model.Report{
		City:        obs.City,
		Code:        obs.Code,
		Kelvin:      obs.Kelvin,
		Celsius:     celsius,
		Temperature: FormatCelsius(celsius),
		Emoji:       weather.Symbol(obs.Code),
		Description: obs.Description,
	}
	s.lookups.WithLabelValues(OutcomeSuccess).Inc()
	span.SetAttributes(attribute.Int("weather.code", obs.Code))
	s.log.Debug("weather lookup succeeded",
		zap.String("city", report.City),
		zap.Int("code", report.Code),
		zap.Float64("celsius", celsius),
	)
	return report, nil
}

// FormatCelsius renders a Celsius temperature rounded to whole degrees, e.g. "27°C".
func FormatCelsius(c float64) string {
	return fmt.Sprintf("%.0f°C", c)
}

// Outcome classifies a lookup error into one of the Outcome* labels.
func Outcome(err error) string {
	var httpErr *weather.HTTPError
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrCityRequired):
		return OutcomeInvalidInput
	case errors.As(err, &httpErr):
		return OutcomeHTTPError
	case errors.Is(err, weather.ErrTimeout):
		return OutcomeTimeout
	case errors.Is(err, weather.ErrConnection):
		return OutcomeConnectionError
	case errors.Is(err, weather.ErrTooManyRedirects):
		return OutcomeTooManyRedirects
	default:
		return OutcomeRequestError
	}
}
