package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"pricescout/config"
	"pricescout/models"
	"pricescout/scraper"
)

// ErrRunInProgress is returned when a trigger arrives while a run is
// already active. Runs are never queued; the next schedule picks up.
var ErrRunInProgress = errors.New("research run already in progress")

// BrowserSession is the slice of scraper.Session a run needs. One session
// is opened per run and closed when the run ends, whatever the outcome.
type BrowserSession interface {
	NewPage() (scraper.Page, error)
	Close()
}

// CriteriaStore loads the input workbook and writes result workbooks.
type CriteriaStore interface {
	LoadCriteria(path string) ([]models.SearchCriterion, error)
	WriteResults(dir, name string, rows []models.ResultRow) (string, error)
}

// ResultsMailer delivers the output workbooks.
type ResultsMailer interface {
	IsConfigured() bool
	SendResults(dir string) error
}

// RunHistory persists run records. A nil history disables persistence.
type RunHistory interface {
	CreateRun(startedAt time.Time) (int, error)
	AddSiteResult(runID int, outcome models.SiteOutcome) error
	CompleteRun(id int, status string, totalMatches int, emailSent bool, runErr string) error
}

// ResearchService owns the end-to-end research pass: criteria in, three
// site passes, workbooks out, email at the end.
type ResearchService struct {
	cfg      *config.Config
	log      *logrus.Logger
	searcher *scraper.Searcher
	profiles []scraper.SiteProfile
	sheets   CriteriaStore
	mailer   ResultsMailer
	history  RunHistory

	newSession func() (BrowserSession, error)

	mu      sync.Mutex
	running bool
}

func NewResearchService(
	cfg *config.Config,
	log *logrus.Logger,
	searcher *scraper.Searcher,
	profiles []scraper.SiteProfile,
	sheets CriteriaStore,
	mailer ResultsMailer,
	history RunHistory,
) *ResearchService {
	s := &ResearchService{
		cfg:      cfg,
		log:      log,
		searcher: searcher,
		profiles: profiles,
		sheets:   sheets,
		mailer:   mailer,
		history:  history,
	}
	s.newSession = func() (BrowserSession, error) {
		return scraper.NewSession(log, scraper.SessionOptions{
			ChromiumBin: cfg.ChromiumBin,
			NavTimeout:  cfg.NavTimeout,
		})
	}
	return s
}

// Run executes one research pass, blocking until it completes.
func (s *ResearchService) Run() error {
	if !s.tryAcquire() {
		return ErrRunInProgress
	}
	defer s.release()
	return s.run()
}

// StartRun launches a pass in the background. It returns ErrRunInProgress
// without starting anything when a pass is already active.
func (s *ResearchService) StartRun() error {
	if !s.tryAcquire() {
		return ErrRunInProgress
	}
	go func() {
		defer s.release()
		if err := s.run(); err != nil {
			s.log.Errorf("Research run failed: %v", err)
		}
	}()
	return nil
}

// Running reports whether a pass is active.
func (s *ResearchService) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *ResearchService) tryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *ResearchService) release() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// run is the pass itself. The recover turns a panicking pass into a failed
// run record instead of a dead process.
func (s *ResearchService) run() (err error) {
	startedAt := time.Now()
	runID := s.recordStart(startedAt)

	totalMatches := 0
	emailSent := false

	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf("Research run panicked: %v", r)
			err = fmt.Errorf("research run panicked: %v", r)
		}
		status := models.RunStatusCompleted
		errMsg := ""
		if err != nil {
			status = models.RunStatusFailed
			errMsg = err.Error()
		}
		s.recordFinish(runID, status, totalMatches, emailSent, errMsg)
		s.log.Infof("Research run finished in %s: status %s, %d total matches, email sent: %v",
			time.Since(startedAt).Round(time.Millisecond), status, totalMatches, emailSent)
	}()

	s.log.Info("Starting research run")

	criteria, err := s.sheets.LoadCriteria(s.cfg.SearchFile)
	if err != nil {
		return fmt.Errorf("failed to load search criteria: %w", err)
	}

	session, err := s.newSession()
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer session.Close()

	page, err := session.NewPage()
	if err != nil {
		return fmt.Errorf("failed to open page: %w", err)
	}

	for _, profile := range s.profiles {
		outcome := s.searchOne(page, profile, criteria)
		totalMatches += outcome.Matches
		s.recordSite(runID, outcome)
	}

	emailSent = s.deliver()
	return nil
}

// searchOne runs one site pass and writes its workbook. Site failures stay
// contained here; the outcome carries them and the run moves on.
func (s *ResearchService) searchOne(page scraper.Page, profile scraper.SiteProfile, criteria []models.SearchCriterion) models.SiteOutcome {
	outcome := models.SiteOutcome{Site: profile.Name, Criteria: len(criteria)}
	started := time.Now()

	matches, err := s.searcher.SearchSite(page, profile, criteria)
	outcome.DurationMS = time.Since(started).Milliseconds()
	if err != nil {
		outcome.Failed = true
		outcome.Error = err.Error()
	}

	rows, err := scraper.BuildRows(matches)
	if err != nil {
		s.log.Errorf("%s: %v", profile.Name, err)
	}
	outcome.Matches = len(rows)

	if _, err := s.sheets.WriteResults(s.cfg.ResultsDir, profile.Slug, rows); err != nil {
		s.log.Errorf("%s: failed to write results: %v", profile.Name, err)
		if !outcome.Failed {
			outcome.Failed = true
			outcome.Error = err.Error()
		}
	}

	return outcome
}

// deliver emails the results directory when SMTP is configured. Delivery
// problems are logged, never fatal to the run.
func (s *ResearchService) deliver() bool {
	if !s.mailer.IsConfigured() {
		s.log.Warn("Email delivery not configured, skipping")
		return false
	}
	if err := s.mailer.SendResults(s.cfg.ResultsDir); err != nil {
		s.log.Errorf("Failed to deliver results: %v", err)
		return false
	}
	return true
}

func (s *ResearchService) recordStart(startedAt time.Time) int {
	if s.history == nil {
		return 0
	}
	id, err := s.history.CreateRun(startedAt)
	if err != nil {
		s.log.Errorf("Failed to record run start: %v", err)
		return 0
	}
	return id
}

func (s *ResearchService) recordSite(runID int, outcome models.SiteOutcome) {
	if s.history == nil || runID == 0 {
		return
	}
	if err := s.history.AddSiteResult(runID, outcome); err != nil {
		s.log.Errorf("Failed to record site result: %v", err)
	}
}

func (s *ResearchService) recordFinish(id int, status string, totalMatches int, emailSent bool, errMsg string) {
	if s.history == nil || id == 0 {
		return
	}
	if err := s.history.CompleteRun(id, status, totalMatches, emailSent, errMsg); err != nil {
		s.log.Errorf("Failed to record run completion: %v", err)
	}
}
