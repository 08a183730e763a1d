package weather

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherapp/internal/config"
)

func newTestProvider(t *testing.T, baseURL string, mutate func(*config.WeatherConfig)) *openWeather {
	t.Helper()
	cfg := config.WeatherConfig{
		APIKey:       "test-key",
		BaseURL:      baseURL,
		Timeout:      2 * time.Second,
		MaxRedirects: 30,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	p, err := newOpenWeather(cfg, http.DefaultTransport)
	require.NoError(t, err)
	return p
}

func TestNewOpenWeather_Validation(t *testing.T) {
	_, err := NewOpenWeather(config.WeatherConfig{})
	assert.Error(t, err)

	_, err = NewOpenWeather(config.WeatherConfig{BaseURL: "not a url"})
	assert.Error(t, err)

	p, err := NewOpenWeather(config.WeatherConfig{BaseURL: "https://api.openweathermap.org/"})
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestOpenWeather_Current(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, currentWeatherPath, r.URL.Path)
			assert.Equal(t, "London", r.URL.Query().Get("q"))
			assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"cod":200,"name":"London","main":{"temp":300.15},"weather":[{"id":800,"description":"clear sky"}]}`))
		}))
		defer srv.Close()

		obs, err := newTestProvider(t, srv.URL, nil).Current(ctx, "London")
		require.NoError(t, err)
		assert.Equal(t, &Observation{City: "London", Kelvin: 300.15, Code: 800, Description: "clear sky"}, obs)
	})

	t.Run("city is url encoded", func(t *testing.T) {
		var rawQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawQuery = r.URL.RawQuery
			_, _ = w.Write([]byte(`{"cod":200,"main":{"temp":290},"weather":[{"id":500,"description":"light rain"}]}`))
		}))
		defer srv.Close()

		obs, err := newTestProvider(t, srv.URL, nil).Current(ctx, "São Paulo&x=1")
		require.NoError(t, err)
		assert.Contains(t, rawQuery, "q=S%C3%A3o+Paulo%26x%3D1")
		// Falls back to the query when the body carries no name.
		assert.Equal(t, "São Paulo&x=1", obs.City)
	})

	t.Run("http error carries status and upstream message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
		}))
		defer srv.Close()

		_, err := newTestProvider(t, srv.URL, nil).Current(ctx, "Atlantis")
		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
		assert.Equal(t, "city not found", httpErr.Message)
	})

	t.Run("http error with non json body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream down", http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := newTestProvider(t, srv.URL, nil).Current(ctx, "Paris")
		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
		assert.Empty(t, httpErr.Message)
	})

	t.Run("invalid json is a request error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>oops</html>`))
		}))
		defer srv.Close()

		_, err := newTestProvider(t, srv.URL, nil).Current(ctx, "Paris")
		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Contains(t, err.Error(), "decode response")
	})

	t.Run("unexpected cod is a request error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"cod":"401","message":"nope"}`))
		}))
		defer srv.Close()

		_, err := newTestProvider(t, srv.URL, nil).Current(ctx, "Paris")
		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Contains(t, err.Error(), "unexpected cod 401")
	})

	t.Run("missing fields are request errors", func(t *testing.T) {
		bodies := map[string]string{
			"no temp":    `{"cod":200,"main":{},"weather":[{"id":800,"description":"clear sky"}]}`,
			"no weather": `{"cod":200,"main":{"temp":280},"weather":[]}`,
		}
		for name, body := range bodies {
			t.Run(name, func(t *testing.T) {
				srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					_, _ = w.Write([]byte(body))
				}))
				defer srv.Close()

				_, err := newTestProvider(t, srv.URL, nil).Current(ctx, "Paris")
				var reqErr *RequestError
				assert.ErrorAs(t, err, &reqErr)
			})
		}
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := newTestProvider(t, url, nil).Current(ctx, "Paris")
		assert.ErrorIs(t, err, ErrConnection)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer srv.Close()

		p := newTestProvider(t, srv.URL, func(c *config.WeatherConfig) { c.Timeout = 50 * time.Millisecond })
		_, err := p.Current(ctx, "Paris")
		assert.ErrorIs(t, err, ErrTimeout)
	})

	t.Run("context deadline", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer srv.Close()

		dctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()
		_, err := newTestProvider(t, srv.URL, nil).Current(dctx, "Paris")
		assert.ErrorIs(t, err, ErrTimeout)
	})

	t.Run("too many redirects", func(t *testing.T) {
		var hops atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hops.Add(1)
			http.Redirect(w, r, r.URL.String(), http.StatusFound)
		}))
		defer srv.Close()

		p := newTestProvider(t, srv.URL, func(c *config.WeatherConfig) { c.MaxRedirects = 3 })
		_, err := p.Current(ctx, "Paris")
		assert.ErrorIs(t, err, ErrTooManyRedirects)
		assert.Equal(t, int32(4), hops.Load())
	})
}

func TestApiCode_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    apiCode
		wantErr bool
	}{
		{`200`, 200, false},
		{`"404"`, 404, false},
		{`null`, 0, false},
		{`"abc"`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var c apiCode
			err := json.Unmarshal([]byte(tt.in), &c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestClassify(t *testing.T) {
	assert.ErrorIs(t, classify(context.DeadlineExceeded), ErrTimeout)
	assert.ErrorIs(t, classify(ErrTooManyRedirects), ErrTooManyRedirects)

	var reqErr *RequestError
	err := classify(errors.New("boom"))
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "boom", err.Error())
}
