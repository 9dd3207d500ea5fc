package scraper

import (
	"errors"
	"fmt"
)

// Strategy names how a locator value should be interpreted.
type Strategy string

const (
	ByID        Strategy = "id"
	ByClassName Strategy = "class"
	ByTagName   Strategy = "tag"
	ByCSS       Strategy = "css"
	ByXPath     Strategy = "xpath"
)

// ErrUnknownStrategy marks a locator whose strategy is not one of the
// supported constants. Lookups with such a locator can never succeed.
var ErrUnknownStrategy = errors.New("unknown locator strategy")

// Locator identifies an element on a page.
type Locator struct {
	Strategy Strategy
	Value    string
}

func ID(value string) Locator        { return Locator{Strategy: ByID, Value: value} }
func ClassName(value string) Locator { return Locator{Strategy: ByClassName, Value: value} }
func TagName(value string) Locator   { return Locator{Strategy: ByTagName, Value: value} }
func CSS(value string) Locator       { return Locator{Strategy: ByCSS, Value: value} }
func XPath(value string) Locator     { return Locator{Strategy: ByXPath, Value: value} }

func (l Locator) String() string {
	return fmt.Sprintf("%s=%s", l.Strategy, l.Value)
}

// query translates the locator into something the browser can run, either a
// CSS selector or an XPath expression.
type query struct {
	selector string
	xpath    bool
}

func (l Locator) query() (query, error) {
	switch l.Strategy {
	case ByID:
		return query{selector: fmt.Sprintf("[id=%q]", l.Value)}, nil
	case ByClassName:
		return query{selector: "." + l.Value}, nil
	case ByTagName:
		return query{selector: l.Value}, nil
	case ByCSS:
		return query{selector: l.Value}, nil
	case ByXPath:
		return query{selector: l.Value, xpath: true}, nil
	default:
		return query{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, string(l.Strategy))
	}
}
