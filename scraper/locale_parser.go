package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

// LocaleParser extracts a price from text whose number format is not known up
// front. The marketplaces mostly render Brazilian grouping, but imported
// listings occasionally carry US-style prices, which the fixed rules in
// ParseBRL would mis-read.
type LocaleParser struct {
	patterns []localePattern
}

type localePattern struct {
	name string
	re   *regexp.Regexp
}

// NewLocaleParser creates a parser that tries Brazilian, US and plain decimal
// formats in that order.
func NewLocaleParser() *LocaleParser {
	return &LocaleParser{
		patterns: []localePattern{
			// Brazilian: 1.234,56 / 2.350 / 10,50
			{"brl", regexp.MustCompile(`\b[0-9]{1,3}(?:\.[0-9]{3})+(?:,[0-9]{2})?\b|\b[0-9]+,[0-9]{2}\b`)},
			// US: 1,234.56 / 1,234
			{"us", regexp.MustCompile(`\b[0-9]{1,3}(?:,[0-9]{3})+(?:\.[0-9]{2})?\b`)},
			// Plain: 1234.56 / 99
			{"plain", regexp.MustCompile(`\b[0-9]+(?:\.[0-9]{1,2})?\b`)},
		},
	}
}

// Parse returns the first price-like number found in text, or a ParseError
// when no pattern matches.
func (lp *LocaleParser) Parse(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)

	for _, pattern := range lp.patterns {
		match := pattern.re.FindString(trimmed)
		if match == "" {
			continue
		}

		value, err := strconv.ParseFloat(normalizeNumber(match, pattern.name), 64)
		if err != nil {
			continue
		}
		return value, nil
	}

	return 0, &ParseError{Text: text}
}

// normalizeNumber rewrites a locale-grouped number into strconv form.
func normalizeNumber(number, locale string) string {
	switch locale {
	case "brl":
		number = strings.ReplaceAll(number, ".", "")
		return strings.ReplaceAll(number, ",", ".")
	case "us":
		return strings.ReplaceAll(number, ",", "")
	default:
		return number
	}
}
