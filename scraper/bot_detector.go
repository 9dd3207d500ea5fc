package scraper

import (
	"regexp"
	"strings"
)

// BotDetector spots block walls and CAPTCHA interstitials on a landing
// page. The sites under research serve pt-BR, so both languages are
// covered.
type BotDetector struct {
	wallPatterns    []*regexp.Regexp
	captchaPatterns []*regexp.Regexp
	errorPatterns   []*regexp.Regexp
}

// NewBotDetector creates a detector with the stock pattern set.
func NewBotDetector() *BotDetector {
	return &BotDetector{
		wallPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)access denied`),
			regexp.MustCompile(`(?i)automated access`),
			regexp.MustCompile(`(?i)unusual traffic`),
			regexp.MustCompile(`(?i)checking your browser`),
			regexp.MustCompile(`(?i)tr[aá]fego incomum`),
			regexp.MustCompile(`(?i)acesso negado`),
			regexp.MustCompile(`(?i)algo deu errado`),
			regexp.MustCompile(`(?i)rate limit`),
			regexp.MustCompile(`(?i)too many requests`),
		},
		captchaPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)captcha`),
			regexp.MustCompile(`(?i)recaptcha`),
			regexp.MustCompile(`(?i)hcaptcha`),
			regexp.MustCompile(`(?i)verify you are human`),
			regexp.MustCompile(`(?i)n[aã]o [eé] um rob[oô]`),
			regexp.MustCompile(`(?i)digite os caracteres`),
		},
		errorPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)403 forbidden`),
			regexp.MustCompile(`(?i)429 too many requests`),
			regexp.MustCompile(`(?i)503 service unavailable`),
			regexp.MustCompile(`(?i)site temporarily unavailable`),
		},
	}
}

// Detect scores page markup for signs of a block. The score accumulates per
// matched pattern, capped at 1.0; anything above 0.3 counts as blocked.
func (bd *BotDetector) Detect(content string) (bool, string, float64) {
	lowered := strings.ToLower(content)

	score := 0.0
	var reasons []string

	for _, pattern := range bd.wallPatterns {
		if pattern.MatchString(lowered) {
			score += 0.3
			reasons = append(reasons, pattern.String())
		}
	}

	for _, pattern := range bd.captchaPatterns {
		if pattern.MatchString(lowered) {
			score += 0.5
			reasons = append(reasons, "CAPTCHA: "+pattern.String())
		}
	}

	for _, pattern := range bd.errorPatterns {
		if pattern.MatchString(lowered) {
			score += 0.4
			reasons = append(reasons, "HTTP error: "+pattern.String())
		}
	}

	// A near-empty document alongside any indicator is almost always an
	// interstitial rather than a results page.
	if len(lowered) < 1000 && score > 0 {
		score += 0.2
		reasons = append(reasons, "very short content")
	}

	if score > 1.0 {
		score = 1.0
	}

	return score > 0.3, strings.Join(reasons, "; "), score
}
