package scraper

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports price text with no usable numeric token.
type ParseError struct {
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no numeric price in %q", e.Text)
}

// ParseBRL converts Brazilian-format price text to its numeric value:
// "R$ 1.234,56" becomes 1234.56. Dots are thousands separators and the
// comma is the decimal mark. Only the first whitespace-separated token is
// read, so trailing text like installment notes is ignored.
func ParseBRL(text string) (float64, error) {
	cleaned := strings.ReplaceAll(text, "R$", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return 0, &ParseError{Text: text}
	}

	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, &ParseError{Text: text}
	}
	return value, nil
}

// FormatBRL renders a parsed price the way the result sheets expect it.
func FormatBRL(value float64) string {
	return "R$" + strconv.FormatFloat(value, 'f', 2, 64)
}
