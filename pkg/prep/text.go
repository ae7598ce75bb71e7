package prep

import (
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// formatFloat renders v with the given number of decimal places.
func formatFloat(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// naNBlank renders v like formatFloat but maps NaN to "".
func naNBlank(v float64, precision int) string {
	if math.IsNaN(v) {
		return ""
	}
	return formatFloat(v, precision)
}

// displayWidth measures the terminal/monospace display width of s.
// Wide runes (CJK) count as two cells, which plain len() would get wrong.
func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// ljust pads s on the right to the given display width.
func ljust(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// maxWidth returns the largest display width among the given strings.
func maxWidth(ss []string) int {
	w := 0
	for _, s := range ss {
		if n := displayWidth(s); n > w {
			w = n
		}
	}
	return w
}

// normalizeLabel applies the configured capitalization mode.
func normalizeLabel(s, mode string) string {
	switch mode {
	case "capitalize":
		return capitalize(s)
	case "title":
		return strings.Title(s) //nolint:staticcheck // ASCII label data, original semantics
	case "lower":
		return strings.ToLower(s)
	case "upper":
		return strings.ToUpper(s)
	}
	return s
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}

// formCIRange builds "(ll to hl)" from the formatted limits.
// caps supplies the enclosing runes; a short caps string degrades gracefully.
func formCIRange(ll, hl, caps, connector string) string {
	opener, closer := "", ""
	if r := []rune(caps); len(r) >= 2 {
		opener, closer = string(r[0]), string(r[1])
	}
	return opener + ll + connector + hl + closer
}

// starPValue formats a p-value at the given precision and appends the symbol
// of the first threshold it clears. NaN formats to "".
func starPValue(p float64, precision int, star bool, thresholds []float64, symbols []string) string {
	if math.IsNaN(p) {
		return ""
	}
	s := formatFloat(p, precision)
	if !star {
		return s
	}
	for i, t := range thresholds {
		if p <= t {
			return s + symbols[i]
		}
	}
	return s
}
