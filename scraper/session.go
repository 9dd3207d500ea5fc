package scraper

import (
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"
)

// stealthScript hides the most common automation tells before any site
// script runs. The sites under research serve pt-BR visitors.
const stealthScript = `
	Object.defineProperty(navigator, 'webdriver', {
		get: () => undefined,
	});

	Object.defineProperty(navigator, 'languages', {
		get: () => ['pt-BR', 'pt', 'en'],
	});

	Object.defineProperty(navigator, 'plugins', {
		get: () => [1, 2, 3, 4, 5],
	});

	window.chrome = {
		runtime: {},
	};
`

// Session owns one headless browser for the duration of a research run.
type Session struct {
	browser    *rod.Browser
	navTimeout time.Duration
	log        *logrus.Logger
}

// SessionOptions tunes how the browser is launched.
type SessionOptions struct {
	// ChromiumBin forces a browser binary. Empty means auto-detect, with
	// /usr/bin/chromium-browser preferred when present (Docker image).
	ChromiumBin string
	// NavTimeout bounds each page load. Zero means 30s.
	NavTimeout time.Duration
}

// NewSession launches a headless browser and connects to it.
func NewSession(log *logrus.Logger, opts SessionOptions) (*Session, error) {
	l := launcher.New().
		Headless(true).
		NoSandbox(true).
		Leakless(false)

	bin := opts.ChromiumBin
	if bin == "" {
		if _, err := os.Stat("/usr/bin/chromium-browser"); err == nil {
			bin = "/usr/bin/chromium-browser"
		}
	}
	if bin != "" {
		l = l.Bin(bin)
		log.Infof("Using system Chromium at %s", bin)
	} else {
		log.Info("Using auto-detected Chromium")
	}

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	log.Infof("Browser control URL: %s", url)

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	navTimeout := opts.NavTimeout
	if navTimeout <= 0 {
		navTimeout = 30 * time.Second
	}

	return &Session{browser: browser, navTimeout: navTimeout, log: log}, nil
}

// NewPage opens a blank tab with the viewport and stealth overrides applied.
func (s *Session) NewPage() (Page, error) {
	page, err := s.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1920,
		Height:            1080,
		DeviceScaleFactor: 1.0,
	}); err != nil {
		s.log.Warnf("Failed to set viewport: %v", err)
	}

	if _, err := page.EvalOnNewDocument(stealthScript); err != nil {
		s.log.Warnf("Failed to install stealth overrides: %v", err)
	}

	return &rodPage{page: page, navTimeout: s.navTimeout}, nil
}

// Close shuts the browser down, ending every open page.
func (s *Session) Close() {
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			s.log.Warnf("Failed to close browser: %v", err)
		}
	}
}
