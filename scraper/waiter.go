package scraper

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// WaitOutcome tells callers how a presence wait ended, so they can decide
// whether to proceed, skip, or fix their locator.
type WaitOutcome int

const (
	// WaitFound means the element showed up within the timeout.
	WaitFound WaitOutcome = iota
	// WaitTimedOut means the element never appeared.
	WaitTimedOut
	// WaitBadLocator means the locator itself is unusable.
	WaitBadLocator
)

func (o WaitOutcome) String() string {
	switch o {
	case WaitFound:
		return "found"
	case WaitTimedOut:
		return "timed out"
	case WaitBadLocator:
		return "bad locator"
	default:
		return "unknown"
	}
}

// DefaultWaitTimeout is how long presence waits block when no explicit
// timeout is given.
const DefaultWaitTimeout = 10 * time.Second

// waitPollInterval is how often presence is re-checked while waiting.
var waitPollInterval = 250 * time.Millisecond

// WaitPresent blocks until an element matching loc is present on the page,
// polling until timeout. Failures are logged, never returned as errors; the
// outcome says what happened.
func WaitPresent(page Page, loc Locator, timeout time.Duration, log *logrus.Logger) WaitOutcome {
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	deadline := time.Now().Add(timeout)

	for {
		found, err := page.Exists(loc)
		if err != nil {
			if errors.Is(err, ErrUnknownStrategy) {
				log.Errorf("Invalid locator %s: %v", loc, err)
				return WaitBadLocator
			}
			// Transient lookup errors count as absent.
			log.Debugf("Lookup error while waiting for %s: %v", loc, err)
		} else if found {
			return WaitFound
		}

		if time.Now().After(deadline) {
			log.Warnf("Timed out after %s waiting for element %s", timeout, loc)
			return WaitTimedOut
		}
		time.Sleep(waitPollInterval)
	}
}
