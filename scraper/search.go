package scraper

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"pricescout/models"
)

// PriceBounds is the inclusive price window a criterion accepts.
type PriceBounds struct {
	Min float64
	Max float64
}

// Contains reports whether price falls inside the window, bounds included.
func (b PriceBounds) Contains(price float64) bool {
	return b.Min <= price && price <= b.Max
}

// Accept applies the acceptance rule for one result card: every banned term
// is checked and a single hit anywhere in the name rejects the card, then
// the price must sit inside the bounds. Matching is case sensitive.
func Accept(name string, price float64, bounds PriceBounds, banned []string) bool {
	for _, term := range banned {
		if strings.Contains(name, term) {
			return false
		}
	}
	return bounds.Contains(price)
}

// Searcher runs search criteria against marketplace sites.
type Searcher struct {
	log         *logrus.Logger
	waitTimeout time.Duration
	scrollPause time.Duration
	detector    *BotDetector
	parser      *LocaleParser
}

// SearcherOptions tunes waiting and scrolling behavior.
type SearcherOptions struct {
	WaitTimeout time.Duration
	ScrollPause time.Duration
}

// NewSearcher creates a Searcher. Zero options fall back to the defaults
// used in production.
func NewSearcher(log *logrus.Logger, opts SearcherOptions) *Searcher {
	if opts.WaitTimeout <= 0 {
		opts.WaitTimeout = DefaultWaitTimeout
	}
	if opts.ScrollPause <= 0 {
		opts.ScrollPause = 100 * time.Millisecond
	}
	return &Searcher{
		log:         log,
		waitTimeout: opts.WaitTimeout,
		scrollPause: opts.ScrollPause,
		detector:    NewBotDetector(),
		parser:      NewLocaleParser(),
	}
}

// SearchSite runs every criterion against one site and returns whatever was
// accumulated. The error is non-nil only when the site's landing page never
// loaded; failures inside a criterion or a card are logged and skipped so
// one bad row cannot sink the rest.
func (s *Searcher) SearchSite(page Page, profile SiteProfile, criteria []models.SearchCriterion) (*MatchSet, error) {
	matches := NewMatchSet()

	if err := page.Navigate(profile.BaseURL); err != nil {
		s.log.Errorf("%s: unable to open %s: %v", profile.Name, profile.BaseURL, err)
		return matches, fmt.Errorf("unable to open %s: %w", profile.BaseURL, err)
	}
	s.checkBlockWall(page, profile)

	for _, criterion := range criteria {
		s.searchCriterion(page, profile, criterion, matches)
	}

	return matches, nil
}

// searchCriterion runs one sheet row end to end: submit the query, reach the
// results, scroll them in, filter the cards, then reset to the landing page.
// Early returns skip the reset; the next criterion recovers via its own
// input wait.
func (s *Searcher) searchCriterion(page Page, profile SiteProfile, criterion models.SearchCriterion, matches *MatchSet) {
	bounds, banned, err := parseCriterion(criterion, profile.Split)
	if err != nil {
		s.log.Errorf("%s: skipping %q: %v", profile.Name, criterion.Product, err)
		return
	}

	if profile.WaitForInput {
		WaitPresent(page, profile.SearchInput, s.waitTimeout, s.log)
	}
	searchBar, err := page.Element(profile.SearchInput)
	if err != nil {
		s.log.Errorf("%s: search bar not found: %v", profile.Name, err)
		return
	}
	if err := searchBar.Input(criterion.Product); err != nil {
		s.log.Errorf("%s: could not type query %q: %v", profile.Name, criterion.Product, err)
		return
	}
	if err := searchBar.PressEnter(); err != nil {
		s.log.Errorf("%s: could not submit query %q: %v", profile.Name, criterion.Product, err)
		return
	}

	if profile.SecondaryNav != nil {
		WaitPresent(page, *profile.SecondaryNav, s.waitTimeout, s.log)
		tab, err := page.Element(*profile.SecondaryNav)
		if err != nil {
			s.log.Errorf("%s: results tab not found for %q: %v", profile.Name, criterion.Product, err)
			return
		}
		if err := tab.Click(); err != nil {
			s.log.Errorf("%s: could not open results tab for %q: %v", profile.Name, criterion.Product, err)
			return
		}
	}

	WaitPresent(page, profile.ResultList, s.waitTimeout, s.log)
	ScrollDown(page, s.scrollPause, s.log)

	cards, err := page.Elements(profile.Card)
	if err != nil {
		s.log.Errorf("%s: results not found for %q: %v", profile.Name, criterion.Product, err)
		return
	}

	accepted := 0
	for _, card := range cards {
		match, ok := s.extractCard(card, profile, bounds, banned)
		if !ok {
			continue
		}
		matches.Put(match)
		accepted++
	}
	s.log.Infof("%s: %q accepted %d of %d cards", profile.Name, criterion.Product, accepted, len(cards))

	// Back to the landing page so the next criterion starts from a clean
	// search box.
	if err := page.Navigate(profile.BaseURL); err != nil {
		s.log.Errorf("%s: could not return to %s: %v", profile.Name, profile.BaseURL, err)
		return
	}
	WaitPresent(page, profile.SearchInput, s.waitTimeout, s.log)
}

// extractCard reads one result card and applies the acceptance rule. Prices
// go through the BRL rules first and fall back to the locale patterns. Any
// missing piece or unparsable price drops just this card. The link is
// resolved only for cards that pass.
func (s *Searcher) extractCard(card Element, profile SiteProfile, bounds PriceBounds, banned []string) (models.ProductMatch, bool) {
	nameEl, err := card.Element(profile.CardName)
	if err != nil {
		return models.ProductMatch{}, false
	}
	name, err := nameEl.Text()
	if err != nil {
		return models.ProductMatch{}, false
	}

	priceEl, err := card.Element(profile.CardPrice)
	if err != nil {
		return models.ProductMatch{}, false
	}
	priceText, err := priceEl.Text()
	if err != nil {
		return models.ProductMatch{}, false
	}
	price, err := ParseBRL(priceText)
	if err != nil {
		price, err = s.parser.Parse(priceText)
	}
	if err != nil {
		s.log.Debugf("%s: unparsable price %q for %q", profile.Name, priceText, name)
		return models.ProductMatch{}, false
	}

	if !Accept(name, price, bounds, banned) {
		return models.ProductMatch{}, false
	}

	linkEl, err := card.Element(profile.CardLink)
	if err != nil {
		return models.ProductMatch{}, false
	}
	link, err := linkEl.Attribute("href")
	if err != nil {
		return models.ProductMatch{}, false
	}

	return models.ProductMatch{
		Name:      name,
		Price:     price,
		PriceText: FormatBRL(price),
		Link:      link,
	}, true
}

// checkBlockWall warns when the landing page looks like an interstitial.
// The run proceeds regardless.
func (s *Searcher) checkBlockWall(page Page, profile SiteProfile) {
	html, err := page.HTML()
	if err != nil {
		s.log.Debugf("%s: could not read page markup: %v", profile.Name, err)
		return
	}
	if blocked, reason, score := s.detector.Detect(html); blocked {
		s.log.Warnf("%s: landing page looks blocked (score %.2f): %s", profile.Name, score, reason)
	}
}

// parseCriterion resolves the raw sheet cells into usable bounds and terms.
// A bound that does not parse invalidates the whole criterion.
func parseCriterion(criterion models.SearchCriterion, split SplitConvention) (PriceBounds, []string, error) {
	min, err := strconv.ParseFloat(strings.TrimSpace(criterion.MinPrice), 64)
	if err != nil {
		return PriceBounds{}, nil, fmt.Errorf("invalid min price %q", criterion.MinPrice)
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(criterion.MaxPrice), 64)
	if err != nil {
		return PriceBounds{}, nil, fmt.Errorf("invalid max price %q", criterion.MaxPrice)
	}
	return PriceBounds{Min: min, Max: max}, split.Split(criterion.BannedTerms), nil
}
