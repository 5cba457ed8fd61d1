package ui

const (
	// Standard colors
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	Gray    = "\033[90m" // Bright black, often appears as gray

	// Inverse video colors
	RedInverse    = "\033[7;31m"
	YellowInverse = "\033[7;33m"
	CyanInverse   = "\033[7;36m"

	ResetColor = "\033[0m" // Reset to default color
)

var MethodColors = map[string]string{
	"GET":    Green,
	"POST":   Blue,
	"PUT":    Cyan,
	"DELETE": Yellow,
	"PATCH":  Magenta,
}

// Colour wraps s in an ANSI colour when enabled
func Colour(enabled bool, colour, s string) string {
	if !enabled {
		return s
	}
	return colour + s + ResetColor
}
