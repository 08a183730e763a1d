package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"syscall"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"weatherapp/internal/config"
)

const currentWeatherPath = "/data/2.5/weather"

// openWeather implements Provider against the OpenWeatherMap current weather API.
// It is safe for concurrent use by multiple goroutines.
type openWeather struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

// NewOpenWeather creates a Provider backed by OpenWeatherMap.
// The HTTP client is instrumented with OpenTelemetry, bounded by cfg.Timeout and
// stops following redirects after cfg.MaxRedirects hops.
func NewOpenWeather(cfg config.WeatherConfig) (Provider, error) {
	return newOpenWeather(cfg, http.DefaultTransport)
}

func newOpenWeather(cfg config.WeatherConfig, base http.RoundTripper) (*openWeather, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("weather base url is required")
	}
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid weather base url %q", cfg.BaseURL)
	}
	maxRedirects := cfg.MaxRedirects
	if maxRedirects < 0 {
		maxRedirects = 0
	}

	client := &http.Client{
		Transport: otelhttp.NewTransport(base),
		Timeout:   cfg.Timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return ErrTooManyRedirects
			}
			return nil
		},
	}

	return &openWeather{
		client:   client,
		endpoint: u.String() + currentWeatherPath,
		apiKey:   cfg.APIKey,
	}, nil
}

// apiCode decodes the body's "cod" field, which the API sends as a number on
// success and as a string on errors.
type apiCode int

func (c *apiCode) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*c = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid cod %s", b)
	}
	*c = apiCode(n)
	return nil
}

type currentResponse struct {
	Cod     apiCode `json:"cod"`
	Name    string  `json:"name"`
	Message string  `json:"message"`
	Main    struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"weather"`
}

// requestURL returns the request URL for a city with query parameters encoded.
func (o *openWeather) requestURL(city string) string {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", o.apiKey)
	return o.endpoint + "?" + q.Encode()
}

func (o *openWeather) Current(ctx context.Context, city string) (*Observation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.requestURL(city), nil)
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		httpErr := &HTTPError{StatusCode: resp.StatusCode}
		var payload currentResponse
		if json.Unmarshal(body, &payload) == nil {
			httpErr.Message = payload.Message
		}
		return nil, httpErr
	}

	var payload currentResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &RequestError{Err: fmt.Errorf("decode response: %w", err)}
	}
	if payload.Cod != http.StatusOK {
		return nil, &RequestError{Err: fmt.Errorf("unexpected cod %d in response", payload.Cod)}
	}
	if payload.Main.Temp == nil {
		return nil, &RequestError{Err: errors.New("response is missing main.temp")}
	}
	if len(payload.Weather) == 0 {
		return nil, &RequestError{Err: errors.New("response has no weather conditions")}
	}

	name := payload.Name
	if name == "" {
		name = city
	}
	return &Observation{
		City:        name,
		Kelvin:      *payload.Main.Temp,
		Code:        payload.Weather[0].ID,
		Description: payload.Weather[0].Description,
	}, nil
}

// classify maps transport errors from net/http onto the package taxonomy.
// Timeouts are checked before connection errors since a dial timeout is both.
func classify(err error) error {
	if errors.Is(err, ErrTooManyRedirects) {
		return fmt.Errorf("%w: %v", ErrTooManyRedirects, err)
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) ||
		errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	return &RequestError{Err: err}
}
