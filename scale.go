package tex2img

import (
	"strconv"
	"strings"
)

// DefaultScale is used for unrecognized scale strings.
const DefaultScale = "1.25"

// namedScales maps the common percentages to their dvisvgm factor.
var namedScales = map[string]string{
	"10%":   "0.1",
	"25%":   "0.25",
	"50%":   "0.5",
	"75%":   "0.75",
	"100%":  "1.0",
	"125%":  "1.25",
	"150%":  "1.5",
	"200%":  "2.0",
	"500%":  "5.0",
	"1000%": "10.0",
}

// ParseScale converts a user scale such as "125%" into the decimal factor
// passed to dvisvgm. A value that already parses as a decimal is returned
// unchanged; anything unrecognized yields DefaultScale. ParseScale never
// fails.
func ParseScale(s string) string {
	s = strings.TrimSpace(s)

	if v, ok := namedScales[s]; ok {
		return v
	}

	if pct, ok := strings.CutSuffix(s, "%"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
		if err != nil {
			return DefaultScale
		}
		return formatFactor(n / 100)
	}

	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return s
	}
	return DefaultScale
}

// formatFactor renders f in shortest form, always with a decimal point.
func formatFactor(f float64) string {
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out
}
