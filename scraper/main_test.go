package scraper

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"pricescout/logging"
)

func TestMain(m *testing.M) {
	// Real pacing would make these tests take minutes.
	waitPollInterval = time.Millisecond
	scrollSettle = time.Millisecond
	os.Exit(m.Run())
}

func nopLogger() *logrus.Logger {
	return logging.NewNop()
}

// fakeElement is an in-memory Element for driving the search routine
// without a browser.
type fakeElement struct {
	text      string
	textErr   error
	attrs     map[string]string
	children  map[string]*fakeElement
	inputs    []string
	enters    int
	clicks    int
	attrCalls int
}

func (e *fakeElement) Text() (string, error) {
	if e.textErr != nil {
		return "", e.textErr
	}
	return e.text, nil
}

func (e *fakeElement) Attribute(name string) (string, error) {
	e.attrCalls++
	return e.attrs[name], nil
}

func (e *fakeElement) Element(loc Locator) (Element, error) {
	if child, ok := e.children[loc.String()]; ok {
		return child, nil
	}
	return nil, fmt.Errorf("element not found: %s", loc)
}

func (e *fakeElement) Input(text string) error {
	e.inputs = append(e.inputs, text)
	return nil
}

func (e *fakeElement) PressEnter() error {
	e.enters++
	return nil
}

func (e *fakeElement) Click() error {
	e.clicks++
	return nil
}

// fakePage serves canned elements. Lookups resolve through the same locator
// translation the browser-backed page uses, so unknown strategies fail the
// same way.
type fakePage struct {
	navigations []string
	navErr      error

	elements map[string]*fakeElement
	lists    map[string][]*fakeElement

	scrolls       []int
	bottomAfter   int
	atBottomCalls int

	html    string
	htmlErr error

	// existsAfter delays presence per locator: the locator reads absent for
	// that many Exists calls.
	existsAfter map[string]int
	existsCalls map[string]int
}

func newFakePage() *fakePage {
	return &fakePage{
		elements:    make(map[string]*fakeElement),
		lists:       make(map[string][]*fakeElement),
		existsAfter: make(map[string]int),
		existsCalls: make(map[string]int),
		bottomAfter: 1,
	}
}

func (p *fakePage) Navigate(url string) error {
	p.navigations = append(p.navigations, url)
	return p.navErr
}

func (p *fakePage) Exists(loc Locator) (bool, error) {
	if _, err := loc.query(); err != nil {
		return false, err
	}
	key := loc.String()
	p.existsCalls[key]++
	if p.existsCalls[key] <= p.existsAfter[key] {
		return false, nil
	}
	if _, ok := p.elements[key]; ok {
		return true, nil
	}
	return len(p.lists[key]) > 0, nil
}

func (p *fakePage) Element(loc Locator) (Element, error) {
	if _, err := loc.query(); err != nil {
		return nil, err
	}
	if el, ok := p.elements[loc.String()]; ok {
		return el, nil
	}
	return nil, fmt.Errorf("element not found: %s", loc)
}

func (p *fakePage) Elements(loc Locator) ([]Element, error) {
	if _, err := loc.query(); err != nil {
		return nil, err
	}
	list := p.lists[loc.String()]
	out := make([]Element, 0, len(list))
	for _, el := range list {
		out = append(out, el)
	}
	return out, nil
}

func (p *fakePage) ScrollTo(offset int) error {
	p.scrolls = append(p.scrolls, offset)
	return nil
}

func (p *fakePage) AtBottom() (bool, error) {
	p.atBottomCalls++
	return p.atBottomCalls >= p.bottomAfter, nil
}

func (p *fakePage) HTML() (string, error) {
	if p.htmlErr != nil {
		return "", p.htmlErr
	}
	return p.html, nil
}

// testProfile is a synthetic marketplace with the same shape as the real
// ones.
func testProfile() SiteProfile {
	return SiteProfile{
		Name:         "Test Marketplace",
		Slug:         "Test_Marketplace",
		BaseURL:      "https://marketplace.test",
		SearchInput:  ID("search"),
		WaitForInput: true,
		ResultList:   ClassName("card"),
		Card:         ClassName("card"),
		CardName:     TagName("h2"),
		CardPrice:    ClassName("price"),
		CardLink:     TagName("a"),
		Split:        SplitCommaSpace,
	}
}

// resultCard builds a card element matching profile's inner locators.
func resultCard(profile SiteProfile, name, price, link string) *fakeElement {
	return &fakeElement{
		children: map[string]*fakeElement{
			profile.CardName.String():  {text: name},
			profile.CardPrice.String(): {text: price},
			profile.CardLink.String():  {attrs: map[string]string{"href": link}},
		},
	}
}
