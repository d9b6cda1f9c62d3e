package importer

import (
	"math"
	"strconv"
	"strings"
)

func trim(s string) string {
	return strings.TrimSpace(s)
}

// parseDurationTokens reads the export's duration notation: a sequence of
// tokens among <n>h, <n>m, <n>s, e.g. "1h 5m 10s". Unparseable tokens are
// skipped; an empty or unusable value means zero.
func parseDurationTokens(s string) int {
	total := 0
	for _, tok := range strings.Fields(s) {
		if len(tok) < 2 {
			continue
		}
		n, err := strconv.Atoi(tok[:len(tok)-1])
		if err != nil || n < 0 {
			continue
		}
		switch tok[len(tok)-1] {
		case 'h':
			total += n * 3600
		case 'm':
			total += n * 60
		case 's':
			total += n
		}
	}
	return total
}

// parseLenientSeconds accepts either a plain number or duration tokens,
// covering both shapes the seconds column takes on rest-timer rows.
func parseLenientSeconds(s string) int {
	s = trim(s)
	if s == "" {
		return 0
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(math.Round(f))
	}
	return parseDurationTokens(s)
}

func parseFloatPtr(s string) *float64 {
	s = trim(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseIntPtr(s string) *int {
	f := parseFloatPtr(s)
	if f == nil {
		return nil
	}
	n := int(math.Round(*f))
	return &n
}

// parseRepsPtr accepts decimal rep counts (some exports write "8.0") and
// rounds to the nearest integer.
func parseRepsPtr(s string) *int {
	return parseIntPtr(s)
}
