package mana

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Cost represents a parsed mana cost: a generic portion plus colored pips.
type Cost struct {
	Generic int
	Pips    map[Color]int
}

var symbolPattern = regexp.MustCompile(`\{([^}]+)\}`)

// ParseCost parses a mana cost string (e.g., "{1}{G}", "{2}{R}{R}").
// Supports:
// - Generic: {1}, {2}, {3}, etc.
// - Colored: {W}, {U}, {B}, {R}, {G}
func ParseCost(costStr string) (Cost, error) {
	cost := Cost{}
	if costStr == "" {
		return cost, nil
	}

	matches := symbolPattern.FindAllStringSubmatch(costStr, -1)
	if len(matches) == 0 {
		return cost, fmt.Errorf("malformed mana cost: %q", costStr)
	}

	for _, match := range matches {
		if len(match) < 2 {
			continue
		}
		symbol := strings.ToUpper(strings.TrimSpace(match[1]))

		if c := Color(symbol); c.Valid() {
			if cost.Pips == nil {
				cost.Pips = make(map[Color]int)
			}
			cost.Pips[c]++
			continue
		}

		num, err := strconv.Atoi(symbol)
		if err != nil {
			return Cost{}, fmt.Errorf("unknown mana symbol: {%s}", symbol)
		}
		cost.Generic += num
	}

	return cost, nil
}

// ManaValue returns the converted cost: generic plus one per colored pip.
func (c Cost) ManaValue() int {
	total := c.Generic
	for _, n := range c.Pips {
		total += n
	}
	return total
}

// PipCount returns the total number of colored pips.
func (c Cost) PipCount() int {
	total := 0
	for _, n := range c.Pips {
		total += n
	}
	return total
}

// Colors returns the colors appearing in the cost, in WUBRG order.
func (c Cost) Colors() []Color {
	var colors []Color
	for _, color := range AllColors {
		if c.Pips[color] > 0 {
			colors = append(colors, color)
		}
	}
	return colors
}

// Free reports whether the cost is zero.
func (c Cost) Free() bool {
	return c.Generic == 0 && c.PipCount() == 0
}

// String returns the symbol form of the cost, e.g. "{2}{G}{G}".
func (c Cost) String() string {
	var b strings.Builder
	if c.Generic > 0 || c.PipCount() == 0 {
		fmt.Fprintf(&b, "{%d}", c.Generic)
	}
	colors := make([]Color, 0, len(c.Pips))
	for color := range c.Pips {
		colors = append(colors, color)
	}
	sort.Slice(colors, func(i, j int) bool {
		return colorOrder(colors[i]) < colorOrder(colors[j])
	})
	for _, color := range colors {
		for i := 0; i < c.Pips[color]; i++ {
			fmt.Fprintf(&b, "{%s}", color)
		}
	}
	return b.String()
}

func colorOrder(c Color) int {
	for i, v := range AllColors {
		if v == c {
			return i
		}
	}
	return len(AllColors)
}

// Copy returns an independent copy of the cost.
func (c Cost) Copy() Cost {
	out := Cost{Generic: c.Generic}
	if len(c.Pips) > 0 {
		out.Pips = make(map[Color]int, len(c.Pips))
		for color, n := range c.Pips {
			out.Pips[color] = n
		}
	}
	return out
}
