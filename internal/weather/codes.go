package weather

// Glyphs for each condition group of the upstream weather codes.
const (
	GlyphThunderstorm = "🌩️"
	GlyphDrizzle      = "⛅️"
	GlyphRain         = "🌧️"
	GlyphSnow         = "🌨️"
	GlyphAtmosphere   = "🌫️"
	GlyphVolcanicAsh  = "🌋"
	GlyphSquall       = "💨"
	GlyphTornado      = "🌪️"
	GlyphClear        = "☀️"
	GlyphClouds       = "☁️"
)

// Symbol maps an upstream weather condition code to its display glyph.
// Codes outside every known group map to "".
func Symbol(code int) string {
	switch {
	case code >= 200 && code <= 232:
		return GlyphThunderstorm
	case code >= 300 && code <= 321:
		return GlyphDrizzle
	case code >= 500 && code <= 531:
		return GlyphRain
	case code >= 600 && code <= 622:
		return GlyphSnow
	case code >= 701 && code <= 741:
		return GlyphAtmosphere
	case code == 762:
		return GlyphVolcanicAsh
	case code == 771:
		return GlyphSquall
	case code == 781:
		return GlyphTornado
	case code == 800:
		return GlyphClear
	case code >= 801 && code <= 804:
		return GlyphClouds
	default:
		return ""
	}
}
