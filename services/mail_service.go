package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"pricescout/config"
)

// The subject and body are fixed; the attachments carry the actual results.
const (
	resultsSubject = "Results of pricing research script."
	resultsBody    = "Pipipi Popopo"
)

// MailService emails the result workbooks after a run.
type MailService struct {
	cfg config.MailConfig
	log *logrus.Logger
}

func NewMailService(cfg config.MailConfig, log *logrus.Logger) *MailService {
	return &MailService{cfg: cfg, log: log}
}

// IsConfigured reports whether enough SMTP settings are present to attempt
// delivery.
func (m *MailService) IsConfigured() bool {
	return m.cfg.IsConfigured()
}

// SendResults mails every file currently in dir as an attachment.
func (m *MailService) SendResults(dir string) error {
	msg, attached, err := m.buildMessage(dir)
	if err != nil {
		return err
	}

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send results email: %w", err)
	}

	m.log.Infof("Results email sent to %s with %d attachments", m.cfg.To, len(attached))
	return nil
}

// buildMessage assembles the fixed-subject email with one attachment per
// regular file in dir. Files that cannot be read are skipped, not fatal.
func (m *MailService) buildMessage(dir string) (*gomail.Message, []string, error) {
	msg := gomail.NewMessage()
	if m.cfg.FromName != "" {
		msg.SetAddressHeader("From", m.cfg.From, m.cfg.FromName)
	} else {
		msg.SetHeader("From", m.cfg.From)
	}
	msg.SetHeader("To", m.cfg.To)
	msg.SetHeader("Subject", resultsSubject)
	msg.SetBody("text/plain", resultsBody)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list results directory %s: %w", dir, err)
	}

	var attached []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, err := os.Stat(path); err != nil {
			m.log.Warnf("Skipping attachment %s: %v", path, err)
			continue
		}
		msg.Attach(path)
		attached = append(attached, path)
	}

	return msg, attached, nil
}
