package scraper

import (
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// scrollStep is how far each scroll advances, in pixels.
	scrollStep = 500
	// scrollLimit caps the total distance so endless feeds cannot trap the
	// loop.
	scrollLimit = 12500
)

// scrollSettle is the pause after scrolling ends, giving late content a
// chance to render before cards are read.
var scrollSettle = time.Second

// ScrollDown walks the page down in fixed increments to trigger lazy-loaded
// results, stopping early once the bottom is reached. Scroll errors end the
// walk; the settle pause still applies.
func ScrollDown(page Page, pause time.Duration, log *logrus.Logger) {
	for offset := 0; offset < scrollLimit; {
		if err := page.ScrollTo(offset); err != nil {
			log.Warnf("Scroll aborted at offset %d: %v", offset, err)
			break
		}
		offset += scrollStep
		time.Sleep(pause)

		atBottom, err := page.AtBottom()
		if err != nil {
			log.Warnf("Scroll aborted at offset %d: %v", offset, err)
			break
		}
		if atBottom {
			break
		}
	}
	time.Sleep(scrollSettle)
}
