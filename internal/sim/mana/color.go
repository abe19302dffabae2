package mana

// Color is one of the five mana colors, identified by its cost symbol.
type Color string

const (
	White Color = "W"
	Blue  Color = "U"
	Black Color = "B"
	Red   Color = "R"
	Green Color = "G"
)

// AllColors lists the colors in canonical WUBRG order. Per-color result
// series iterate in this order so output is stable across runs.
var AllColors = []Color{White, Blue, Black, Red, Green}

var colorNames = map[Color]string{
	White: "WHITE",
	Blue:  "BLUE",
	Black: "BLACK",
	Red:   "RED",
	Green: "GREEN",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// Valid reports whether c is one of the five colors.
func (c Color) Valid() bool {
	_, ok := colorNames[c]
	return ok
}

// ContainsColor reports whether colors includes c.
func ContainsColor(colors []Color, c Color) bool {
	for _, v := range colors {
		if v == c {
			return true
		}
	}
	return false
}
