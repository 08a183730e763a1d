package handler

import (
	"bytes"
	"html/template"

	"weatherapp/internal/model"
)

type pageData struct {
	City    string
	Display model.Display
}

// The layout mirrors the desktop form: one input, one button, three labels.
var pageTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Weather App</title>
  <style>
    body { font-family: calibri, sans-serif; text-align: center; }
    #city_label { font-size: 40px; }
    #city_input { font-size: 15px; text-align: center; }
    #get_weather_button { font-size: 25px; font-weight: bold; }
    #temperature_label { font-size: 60px; white-space: pre-line; }
    #temperature_label.error { font-size: 30px; }
    #emoji_label { font-size: 80px; font-family: "Apple Color Emoji", "Segoe UI Emoji", sans-serif; }
    #description_label { font-size: 30px; }
  </style>
</head>
<body>
  <form method="get" action="/">
    <label id="city_label" for="city_input">Enter city name: </label><br />
    <input id="city_input" name="city" value="{{.City}}" autofocus /><br />
    <button id="get_weather_button" type="submit">Get Weather</button>
  </form>
  <div id="temperature_label"{{if .Display.IsError}} class="error"{{end}}>{{.Display.Temperature}}</div>
  <div id="emoji_label">{{.Display.Emoji}}</div>
  <div id="description_label">{{.Display.Description}}</div>
</body>
</html>
`))

func renderPage(data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
