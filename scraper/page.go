package scraper

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
)

// Page is the browser surface the research routines script against. Lookups
// never wait; waiting is the element waiter's job.
type Page interface {
	// Navigate loads url and blocks until the load event fires.
	Navigate(url string) error
	// Exists reports whether at least one element matches loc right now.
	Exists(loc Locator) (bool, error)
	// Element returns the first element matching loc, without waiting.
	Element(loc Locator) (Element, error)
	// Elements returns every element matching loc, without waiting.
	Elements(loc Locator) ([]Element, error)
	// ScrollTo moves the viewport to the given vertical offset.
	ScrollTo(offset int) error
	// AtBottom reports whether the viewport has reached the page end.
	AtBottom() (bool, error)
	// HTML returns the current document markup.
	HTML() (string, error)
}

// Element is a single node found on a Page.
type Element interface {
	Text() (string, error)
	Attribute(name string) (string, error)
	// Element returns the first descendant matching loc, without waiting.
	Element(loc Locator) (Element, error)
	Input(text string) error
	PressEnter() error
	Click() error
}

type rodPage struct {
	page       *rod.Page
	navTimeout time.Duration
}

func (p *rodPage) Navigate(url string) error {
	if err := p.page.Navigate(url); err != nil {
		return fmt.Errorf("failed to load %s: %w", url, err)
	}
	if err := p.page.Timeout(p.navTimeout).WaitLoad(); err != nil {
		return fmt.Errorf("failed to load %s: %w", url, err)
	}
	return nil
}

func (p *rodPage) Exists(loc Locator) (bool, error) {
	q, err := loc.query()
	if err != nil {
		return false, err
	}
	if q.xpath {
		has, _, err := p.page.HasX(q.selector)
		return has, err
	}
	has, _, err := p.page.Has(q.selector)
	return has, err
}

func (p *rodPage) Element(loc Locator) (Element, error) {
	q, err := loc.query()
	if err != nil {
		return nil, err
	}
	var (
		has bool
		el  *rod.Element
	)
	if q.xpath {
		has, el, err = p.page.HasX(q.selector)
	} else {
		has, el, err = p.page.Has(q.selector)
	}
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, fmt.Errorf("element not found: %s", loc)
	}
	return &rodElement{el: el}, nil
}

func (p *rodPage) Elements(loc Locator) ([]Element, error) {
	q, err := loc.query()
	if err != nil {
		return nil, err
	}
	var els rod.Elements
	if q.xpath {
		els, err = p.page.ElementsX(q.selector)
	} else {
		els, err = p.page.Elements(q.selector)
	}
	if err != nil {
		return nil, err
	}
	out := make([]Element, 0, len(els))
	for _, el := range els {
		out = append(out, &rodElement{el: el})
	}
	return out, nil
}

func (p *rodPage) ScrollTo(offset int) error {
	_, err := p.page.Eval(`y => window.scrollTo(0, y)`, offset)
	return err
}

func (p *rodPage) AtBottom() (bool, error) {
	result, err := p.page.Eval(`() => window.innerHeight + window.scrollY >= document.body.scrollHeight`)
	if err != nil {
		return false, err
	}
	return result.Value.Bool(), nil
}

func (p *rodPage) HTML() (string, error) {
	return p.page.HTML()
}

type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Text() (string, error) {
	return e.el.Text()
}

func (e *rodElement) Attribute(name string) (string, error) {
	value, err := e.el.Attribute(name)
	if err != nil {
		return "", err
	}
	if value == nil {
		return "", nil
	}
	return *value, nil
}

func (e *rodElement) Element(loc Locator) (Element, error) {
	q, err := loc.query()
	if err != nil {
		return nil, err
	}
	var (
		has bool
		el  *rod.Element
	)
	if q.xpath {
		has, el, err = e.el.HasX(q.selector)
	} else {
		has, el, err = e.el.Has(q.selector)
	}
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, fmt.Errorf("element not found: %s", loc)
	}
	return &rodElement{el: el}, nil
}

func (e *rodElement) Input(text string) error {
	return e.el.Input(text)
}

func (e *rodElement) PressEnter() error {
	return e.el.Type(input.Enter)
}

func (e *rodElement) Click() error {
	return e.el.Click(proto.InputMouseButtonLeft, 1)
}
