package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PercentFormatter shows a [0, 1] fraction as a whole percentage.
func PercentFormatter(fraction float64) string {
	return fmt.Sprintf("%.0f%%", fraction*100)
}

// PercentParser accepts "60%", "60" or "60 %" and returns 0.6.
func PercentParser(str string) (float64, error) {
	str = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(str), "%"))
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, err
	}
	return v / 100, nil
}

// VoicesFormatter formats a voice count.
func VoicesFormatter(count float64) string {
	n := int(math.Round(count))
	if n == 1 {
		return "1 voice"
	}
	return fmt.Sprintf("%d voices", n)
}

// VoicesParser accepts "128", "128 voices" or "1 voice".
func VoicesParser(str string) (float64, error) {
	str = strings.ToLower(strings.TrimSpace(str))
	str = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(str, "voices"), "voice"))
	n, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("expected a voice count, got: %q", str)
	}
	return float64(n), nil
}

// OnOffFormatter formats boolean as On/Off
func OnOffFormatter(value float64) string {
	if value > 0.5 {
		return "On"
	}
	return "Off"
}

// OnOffParser parses On/Off strings
func OnOffParser(str string) (float64, error) {
	str = strings.ToLower(strings.TrimSpace(str))
	switch str {
	case "on", "yes", "true", "1":
		return 1, nil
	case "off", "no", "false", "0":
		return 0, nil
	default:
		return 0, fmt.Errorf("expected 'on' or 'off', got: %s", str)
	}
}
