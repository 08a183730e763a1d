package model

// Report is the result of a successful current-weather lookup.
// Temperatures are kept in both units; Temperature is the rendered Celsius label.
type Report struct {
	City        string  `json:"city"`
	Code        int     `json:"code"`
	Kelvin      float64 `json:"kelvin"`
	Celsius     float64 `json:"celsius"`
	Temperature string  `json:"temperature"`
	Emoji       string  `json:"emoji"`
	Description string  `json:"description"`
}

// Display holds the three label texts shown to the user.
// On failure Temperature carries the error message and the other two are empty.
type Display struct {
	Temperature string `json:"temperature"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	IsError     bool   `json:"is_error"`
}
