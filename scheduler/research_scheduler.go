package scheduler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"pricescout/services"
)

// ResearchRunner runs one full research pass, blocking until it finishes.
type ResearchRunner interface {
	Run() error
}

// ResearchScheduler triggers research runs on a cron schedule.
type ResearchScheduler struct {
	cron       *cron.Cron
	expression string
	runOnStart bool
	runner     ResearchRunner
	log        *logrus.Logger
}

func NewResearchScheduler(expression string, runOnStart bool, runner ResearchRunner, log *logrus.Logger) *ResearchScheduler {
	return &ResearchScheduler{
		cron:       cron.New(cron.WithSeconds()),
		expression: normalizeCron(expression),
		runOnStart: runOnStart,
		runner:     runner,
		log:        log,
	}
}

// normalizeCron prepends "0 " to standard 5-field cron expressions
// so they work with the 6-field (with seconds) parser.
func normalizeCron(expression string) string {
	if len(strings.Fields(expression)) == 5 {
		return "0 " + expression
	}
	return expression
}

// Start schedules the research job and starts the cron loop.
func (s *ResearchScheduler) Start() error {
	_, err := s.cron.AddFunc(s.expression, s.runScheduled)
	if err != nil {
		return fmt.Errorf("failed to schedule research with %q: %w", s.expression, err)
	}

	if s.runOnStart {
		go s.runScheduled()
	}

	s.cron.Start()
	s.log.Infof("Research scheduled with expression %q", s.expression)
	return nil
}

// Stop stops the cron loop. A run already in flight keeps going.
func (s *ResearchScheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *ResearchScheduler) runScheduled() {
	s.log.Info("Starting scheduled research run")

	if err := s.runner.Run(); err != nil {
		if errors.Is(err, services.ErrRunInProgress) {
			s.log.Warn("Skipping scheduled research run: previous run still in progress")
			return
		}
		s.log.Errorf("Scheduled research run failed: %v", err)
		return
	}

	s.log.Info("Scheduled research run finished")
}
