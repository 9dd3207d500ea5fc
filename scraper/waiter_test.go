package scraper

import (
	"testing"
	"time"
)

func TestWaitPresentFound(t *testing.T) {
	page := newFakePage()
	page.elements[ID("search").String()] = &fakeElement{}

	if got := WaitPresent(page, ID("search"), time.Second, nopLogger()); got != WaitFound {
		t.Errorf("WaitPresent() = %v, want WaitFound", got)
	}
}

func TestWaitPresentFoundAfterDelay(t *testing.T) {
	page := newFakePage()
	loc := ClassName("card")
	page.lists[loc.String()] = []*fakeElement{{}}
	page.existsAfter[loc.String()] = 3

	if got := WaitPresent(page, loc, time.Second, nopLogger()); got != WaitFound {
		t.Errorf("WaitPresent() = %v, want WaitFound", got)
	}
	if calls := page.existsCalls[loc.String()]; calls < 4 {
		t.Errorf("Exists called %d times, want at least 4", calls)
	}
}

func TestWaitPresentTimesOut(t *testing.T) {
	page := newFakePage()

	start := time.Now()
	got := WaitPresent(page, ID("missing"), 20*time.Millisecond, nopLogger())
	if got != WaitTimedOut {
		t.Errorf("WaitPresent() = %v, want WaitTimedOut", got)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("returned after %v, before the timeout elapsed", elapsed)
	}
}

func TestWaitPresentBadLocator(t *testing.T) {
	page := newFakePage()

	got := WaitPresent(page, Locator{Strategy: "magic", Value: "x"}, time.Second, nopLogger())
	if got != WaitBadLocator {
		t.Errorf("WaitPresent() = %v, want WaitBadLocator", got)
	}
}

func TestWaitPresentZeroTimeoutUsesDefault(t *testing.T) {
	page := newFakePage()
	page.elements[ID("search").String()] = &fakeElement{}

	if got := WaitPresent(page, ID("search"), 0, nopLogger()); got != WaitFound {
		t.Errorf("WaitPresent() = %v, want WaitFound", got)
	}
}

func TestWaitOutcomeString(t *testing.T) {
	tests := []struct {
		outcome WaitOutcome
		want    string
	}{
		{WaitFound, "found"},
		{WaitTimedOut, "timed out"},
		{WaitBadLocator, "bad locator"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}
