package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"weatherapp/internal/weather"
	providerMocks "weatherapp/internal/weather/mocks"
)

func newTestService(t *testing.T) (*weatherService, *providerMocks.MockProvider) {
	t.Helper()
	mProvider := new(providerMocks.MockProvider)
	svc, err := NewWeatherService(mProvider, zap.NewNop(), prometheus.NewRegistry())
	require.NoError(t, err)
	return svc.(*weatherService), mProvider
}

func TestNewWeatherService_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewWeatherService(new(providerMocks.MockProvider), nil, reg)
	require.NoError(t, err)

	_, err = NewWeatherService(new(providerMocks.MockProvider), nil, reg)
	assert.Error(t, err)
}

func TestWeatherService_Lookup(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		city        string
		setupMocks  func(m *providerMocks.MockProvider)
		wantTemp    string
		wantEmoji   string
		wantErr     error
		wantOutcome string
	}{
		{
			name: "clear sky",
			city: "  Lisbon ",
			setupMocks: func(m *providerMocks.MockProvider) {
				m.On("Current", mock.Anything, "Lisbon").
					Return(&weather.Observation{City: "Lisbon", Kelvin: 300.15, Code: 800, Description: "clear sky"}, nil)
			},
			wantTemp:    "27°C",
			wantEmoji:   weather.GlyphClear,
			wantOutcome: OutcomeSuccess,
		},
		{
			name: "below zero",
			city: "Oslo",
			setupMocks: func(m *providerMocks.MockProvider) {
				m.On("Current", mock.Anything, "Oslo").
					Return(&weather.Observation{City: "Oslo", Kelvin: 263.15, Code: 601, Description: "snow"}, nil)
			},
			wantTemp:    "-10°C",
			wantEmoji:   weather.GlyphSnow,
			wantOutcome: OutcomeSuccess,
		},
		{
			name:        "empty city never reaches provider",
			city:        "   ",
			setupMocks:  func(m *providerMocks.MockProvider) {},
			wantErr:     ErrCityRequired,
			wantOutcome: OutcomeInvalidInput,
		},
		{
			name: "connection failure is passed through",
			city: "Paris",
			setupMocks: func(m *providerMocks.MockProvider) {
				m.On("Current", mock.Anything, "Paris").
					Return(nil, fmt.Errorf("%w: dial tcp: refused", weather.ErrConnection))
			},
			wantErr:     weather.ErrConnection,
			wantOutcome: OutcomeConnectionError,
		},
		{
			name: "timeout is passed through",
			city: "Paris",
			setupMocks: func(m *providerMocks.MockProvider) {
				m.On("Current", mock.Anything, "Paris").
					Return(nil, fmt.Errorf("%w: deadline", weather.ErrTimeout))
			},
			wantErr:     weather.ErrTimeout,
			wantOutcome: OutcomeTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mProvider := newTestService(t)
			tt.setupMocks(mProvider)

			report, err := svc.Lookup(ctx, tt.city)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, report)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantTemp, report.Temperature)
				assert.Equal(t, tt.wantEmoji, report.Emoji)
			}
			assert.Equal(t, 1.0, testutil.ToFloat64(svc.lookups.WithLabelValues(tt.wantOutcome)))
			mProvider.AssertExpectations(t)
		})
	}
}

func TestWeatherService_Lookup_HTTPError(t *testing.T) {
	svc, mProvider := newTestService(t)
	mProvider.On("Current", mock.Anything, "Atlantis").Return(nil, &weather.HTTPError{StatusCode: 404})

	_, err := svc.Lookup(context.Background(), "Atlantis")

	var httpErr *weather.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.StatusCode)
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.lookups.WithLabelValues(OutcomeHTTPError)))
}

func TestFormatCelsius(t *testing.T) {
	assert.Equal(t, "27°C", FormatCelsius(300.15-kelvinOffset))
	assert.Equal(t, "0°C", FormatCelsius(0.2))
	assert.Equal(t, "-3°C", FormatCelsius(-2.6))
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, OutcomeSuccess},
		{ErrCityRequired, OutcomeInvalidInput},
		{&weather.HTTPError{StatusCode: 500}, OutcomeHTTPError},
		{fmt.Errorf("%w: x", weather.ErrTimeout), OutcomeTimeout},
		{fmt.Errorf("%w: x", weather.ErrConnection), OutcomeConnectionError},
		{fmt.Errorf("%w: x", weather.ErrTooManyRedirects), OutcomeTooManyRedirects},
		{&weather.RequestError{Err: errors.New("bad body")}, OutcomeRequestError},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.err))
		})
	}
}
