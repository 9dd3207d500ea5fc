package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pricescout/database"
	"pricescout/models"
)

// ErrRunNotFound is returned when no run exists for the requested ID.
var ErrRunNotFound = errors.New("run not found")

type RunRepository struct{}

func NewRunRepository() *RunRepository {
	return &RunRepository{}
}

// CreateRun inserts a new run in the running state and returns its ID.
func (r *RunRepository) CreateRun(startedAt time.Time) (int, error) {
	query := `
		INSERT INTO research_runs (started_at, status)
		VALUES ($1, 'running')
		RETURNING id
	`

	var id int
	err := database.DB.QueryRow(query, startedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create run: %v", err)
	}

	return id, nil
}

// AddSiteResult stores the outcome of one site's pass within a run.
func (r *RunRepository) AddSiteResult(runID int, result models.SiteOutcome) error {
	query := `
		INSERT INTO run_site_results (run_id, site, matches, criteria, failed, error, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	var siteErr *string
	if result.Error != "" {
		siteErr = &result.Error
	}

	_, err := database.DB.Exec(query, runID, result.Site, result.Matches, result.Criteria, result.Failed, siteErr, result.DurationMS)
	if err != nil {
		return fmt.Errorf("failed to add site result: %v", err)
	}

	return nil
}

// CompleteRun marks a run as finished and records its final totals.
func (r *RunRepository) CompleteRun(runID int, status string, totalMatches int, emailSent bool, errMsg string) error {
	query := `
		UPDATE research_runs
		SET finished_at = $2, status = $3, total_matches = $4, email_sent = $5, error = $6
		WHERE id = $1
	`

	var runErr *string
	if errMsg != "" {
		runErr = &errMsg
	}

	_, err := database.DB.Exec(query, runID, time.Now(), status, totalMatches, emailSent, runErr)
	if err != nil {
		return fmt.Errorf("failed to complete run: %v", err)
	}

	return nil
}

// GetRecentRuns returns the most recent runs, newest first.
func (r *RunRepository) GetRecentRuns(limit int) ([]models.ResearchRun, error) {
	if limit <= 0 {
		limit = 20 // default limit
	}

	query := `
		SELECT id, started_at, finished_at, status, total_matches, email_sent, error
		FROM research_runs
		ORDER BY started_at DESC
		LIMIT $1
	`

	rows, err := database.DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent runs: %v", err)
	}
	defer rows.Close()

	var runs []models.ResearchRun
	for rows.Next() {
		var run models.ResearchRun
		err := rows.Scan(
			&run.ID, &run.StartedAt, &run.FinishedAt,
			&run.Status, &run.TotalMatches, &run.EmailSent, &run.Error,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %v", err)
		}
		runs = append(runs, run)
	}

	return runs, nil
}

// GetRunByID returns a single run together with its per-site results.
func (r *RunRepository) GetRunByID(id int) (*models.ResearchRun, error) {
	query := `
		SELECT id, started_at, finished_at, status, total_matches, email_sent, error
		FROM research_runs
		WHERE id = $1
	`

	var run models.ResearchRun
	err := database.DB.QueryRow(query, id).Scan(
		&run.ID, &run.StartedAt, &run.FinishedAt,
		&run.Status, &run.TotalMatches, &run.EmailSent, &run.Error,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get run: %v", err)
	}

	sites, err := r.getSiteResults(id)
	if err != nil {
		return nil, err
	}
	run.Sites = sites

	return &run, nil
}

func (r *RunRepository) getSiteResults(runID int) ([]models.SiteOutcome, error) {
	query := `
		SELECT site, matches, criteria, failed, error, duration_ms
		FROM run_site_results
		WHERE run_id = $1
		ORDER BY id ASC
	`

	rows, err := database.DB.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get site results: %v", err)
	}
	defer rows.Close()

	var results []models.SiteOutcome
	for rows.Next() {
		var outcome models.SiteOutcome
		var siteErr *string
		err := rows.Scan(&outcome.Site, &outcome.Matches, &outcome.Criteria, &outcome.Failed, &siteErr, &outcome.DurationMS)
		if err != nil {
			return nil, fmt.Errorf("failed to scan site result: %v", err)
		}
		if siteErr != nil {
			outcome.Error = *siteErr
		}
		results = append(results, outcome)
	}

	return results, nil
}
