package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

var DB *sql.DB

// InitDatabase initializes the database connection
func InitDatabase() error {
	// Get database connection string from environment
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	var err error
	DB, err = sql.Open("postgres", dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// Test the connection
	if err := DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %v", err)
	}

	log.Println("Successfully connected to database")
	return nil
}

// CreateTables creates the run history tables if they don't exist
func CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS research_runs (
			id SERIAL PRIMARY KEY,
			started_at TIMESTAMP NOT NULL,
			finished_at TIMESTAMP,
			status VARCHAR(20) NOT NULL DEFAULT 'running' CHECK (status IN ('running', 'completed', 'failed')),
			total_matches INTEGER DEFAULT 0,
			email_sent BOOLEAN DEFAULT FALSE,
			error TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS run_site_results (
			id SERIAL PRIMARY KEY,
			run_id INTEGER REFERENCES research_runs(id) ON DELETE CASCADE,
			site VARCHAR(50) NOT NULL,
			matches INTEGER DEFAULT 0,
			criteria INTEGER DEFAULT 0,
			failed BOOLEAN DEFAULT FALSE,
			error TEXT,
			duration_ms BIGINT DEFAULT 0
		)`,

		`CREATE INDEX IF NOT EXISTS idx_research_runs_started ON research_runs (started_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_run_site_results_run ON run_site_results (run_id)`,
	}

	for _, query := range queries {
		_, err := DB.Exec(query)
		if err != nil {
			return fmt.Errorf("failed to create table: %v", err)
		}
	}

	return nil
}

// CloseDatabase closes the database connection
func CloseDatabase() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
