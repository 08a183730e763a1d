package service

import (
	"errors"
	"net/http"

	"weatherapp/internal/model"
	"weatherapp/internal/weather"
)

const (
	MsgConnection       = "Connection Error:\nPlease check your internet connection"
	MsgTimeout          = "Timeout Error:\nThe request timed out"
	MsgTooManyRedirects = "Too many Redirects:\nCheck the URL"
	MsgHTTPFallback     = "HTTP Error:\nUnexpected response from the server"
	msgRequestPrefix    = "Request Error:\n"
)

var statusMessages = map[int]string{
	http.StatusBadRequest:          "Bad Request:\nPlease check your input",
	http.StatusUnauthorized:        "Unauthorized:\nInvalid API key",
	http.StatusForbidden:           "Forbidden:\nAccess is denied",
	http.StatusNotFound:            "Not Found:\nCity not found",
	http.StatusInternalServerError: "Internal Server Error:\nPlease try again later",
	http.StatusBadGateway:          "Bad Gateway:\nInvalid response from the server",
	http.StatusServiceUnavailable:  "Service Unavailable:\nServer is down",
	http.StatusGatewayTimeout:      "Gateway Timeout:\nNo response from the server",
}

// StatusMessage returns the user-facing message for an upstream HTTP status.
func StatusMessage(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return MsgHTTPFallback
}

// ErrorMessage returns the user-facing message for a lookup error.
func ErrorMessage(err error) string {
	var httpErr *weather.HTTPError
	switch {
	case errors.Is(err, ErrCityRequired):
		return StatusMessage(http.StatusBadRequest)
	case errors.As(err, &httpErr):
		return StatusMessage(httpErr.StatusCode)
	case errors.Is(err, weather.ErrTimeout):
		return MsgTimeout
	case errors.Is(err, weather.ErrConnection):
		return MsgConnection
	case errors.Is(err, weather.ErrTooManyRedirects):
		return MsgTooManyRedirects
	default:
		return msgRequestPrefix + err.Error()
	}
}

// Present turns a lookup result into the three display labels.
// A non-nil err wins: its message goes into the temperature label and the
// emoji and description labels are cleared.
func Present(report *model.Report, err error) model.Display {
	if err != nil {
		return model.Display{Temperature: ErrorMessage(err), IsError: true}
	}
	if report == nil {
		return model.Display{}
	}
	return model.Display{
		Temperature: report.Temperature,
		Emoji:       report.Emoji,
		Description: report.Description,
	}
}
