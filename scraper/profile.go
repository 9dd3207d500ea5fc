package scraper

import "strings"

// SplitConvention is how a site's banned_terms cell is tokenized. The two
// conventions predate this service and match the sheets already in use.
type SplitConvention int

const (
	// SplitCommas treats ";" and "," interchangeably and splits on commas.
	SplitCommas SplitConvention = iota
	// SplitCommaSpace splits on ", " first and then on ";".
	SplitCommaSpace
)

// Split tokenizes raw banned-terms text into a flat set of trimmed terms.
// Empty tokens are dropped so a blank cell bans nothing.
func (c SplitConvention) Split(raw string) []string {
	var tokens []string
	switch c {
	case SplitCommaSpace:
		for _, part := range strings.Split(raw, ", ") {
			tokens = append(tokens, strings.Split(part, ";")...)
		}
	default:
		tokens = strings.Split(strings.ReplaceAll(raw, ";", ","), ",")
	}

	terms := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if term := strings.TrimSpace(token); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// SiteProfile describes one marketplace: where to type the query, what a
// result card looks like, and how its banned-terms cells are tokenized.
type SiteProfile struct {
	Name    string
	Slug    string
	BaseURL string

	// SearchInput is the query box. WaitForInput makes the routine wait for
	// it before each criterion; sites that render it synchronously skip the
	// wait.
	SearchInput  Locator
	WaitForInput bool

	// SecondaryNav, when set, is clicked after submitting the query to reach
	// the actual results view.
	SecondaryNav *Locator

	// ResultList signals that results have rendered. Card locates one result
	// card; the remaining locators resolve inside a card.
	ResultList Locator
	Card       Locator
	CardName   Locator
	CardPrice  Locator
	CardLink   Locator

	Split SplitConvention
}

// GoogleShopping targets the Shopping tab reached from the main search page.
// The query box is part of the initial document, so there is no input wait.
func GoogleShopping(baseURL string) SiteProfile {
	shoppingTab := XPath(`//*[@id="hdtb-sc"]/div/div/div[1]/div/div[2]`)
	return SiteProfile{
		Name:         "Google Shopping",
		Slug:         "Google_Shopping",
		BaseURL:      baseURL,
		SearchInput:  ID("APjFqb"),
		SecondaryNav: &shoppingTab,
		ResultList:   ClassName("i0X6df"),
		Card:         ClassName("i0X6df"),
		CardName:     ClassName("EI11Pd"),
		CardPrice:    ClassName("a8Pemb"),
		CardLink:     TagName("a"),
		Split:        SplitCommas,
	}
}

// MercadoLivre targets mercadolivre.com.br search results.
func MercadoLivre(baseURL string) SiteProfile {
	return SiteProfile{
		Name:         "Mercado Livre",
		Slug:         "Mercado_Livre",
		BaseURL:      baseURL,
		SearchInput:  ID("cb1-edit"),
		WaitForInput: true,
		ResultList:   ClassName("poly-card__content"),
		Card:         ClassName("poly-card__content"),
		CardName:     TagName("h2"),
		CardPrice:    ClassName("andes-money-amount__fraction"),
		CardLink:     TagName("a"),
		Split:        SplitCommaSpace,
	}
}

// Amazon targets amazon.com.br search results.
func Amazon(baseURL string) SiteProfile {
	return SiteProfile{
		Name:         "Amazon",
		Slug:         "Amazon",
		BaseURL:      baseURL,
		SearchInput:  ID("twotabsearchtextbox"),
		WaitForInput: true,
		ResultList:   ClassName("s-asin"),
		Card:         ClassName("s-asin"),
		CardName:     TagName("h2"),
		CardPrice:    ClassName("a-price"),
		CardLink:     ClassName("a-link-normal"),
		Split:        SplitCommaSpace,
	}
}

// DefaultProfiles returns the three research targets in the order they are
// visited.
func DefaultProfiles(googleURL, mercadoLivreURL, amazonURL string) []SiteProfile {
	return []SiteProfile{
		GoogleShopping(googleURL),
		MercadoLivre(mercadoLivreURL),
		Amazon(amazonURL),
	}
}
