package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"pricescout/models"
	"pricescout/repository"
	"pricescout/services"
)

// ResearchRunner starts research passes in the background.
type ResearchRunner interface {
	StartRun() error
	Running() bool
}

// RunStore reads persisted run history.
type RunStore interface {
	GetRecentRuns(limit int) ([]models.ResearchRun, error)
	GetRunByID(id int) (*models.ResearchRun, error)
}

type Handlers struct {
	runner  ResearchRunner
	runs    RunStore
	log     *logrus.Logger
	started time.Time
}

func NewHandlers(runner ResearchRunner, runs RunStore, log *logrus.Logger) *Handlers {
	return &Handlers{
		runner:  runner,
		runs:    runs,
		log:     log,
		started: time.Now(),
	}
}

// HealthCheck returns a simple health check response
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now(),
		"service":   "pricescout",
		"version":   "1.0.0",
	}
	writeJSON(w, http.StatusOK, response)
}

// GetStatus reports whether a run is in flight and how the last one went
func (h *Handlers) GetStatus(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"timestamp": time.Now(),
		"uptime":    time.Since(h.started).String(),
		"running":   h.runner.Running(),
	}

	recent, err := h.runs.GetRecentRuns(1)
	if err != nil {
		h.log.Errorf("Failed to load last run: %v", err)
	} else if len(recent) > 0 {
		response["last_run"] = recent[0]
	}

	writeJSON(w, http.StatusOK, response)
}

// GetRuns returns recent research runs, newest first
func (h *Handlers) GetRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	runs, err := h.runs.GetRecentRuns(limit)
	if err != nil {
		h.log.Errorf("Failed to get runs: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to get runs")
		return
	}

	if runs == nil {
		runs = []models.ResearchRun{}
	}

	writeJSON(w, http.StatusOK, runs)
}

// GetRun returns one run with its per-site results
func (h *Handlers) GetRun(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid run ID")
		return
	}

	run, err := h.runs.GetRunByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "Run not found")
			return
		}
		h.log.Errorf("Failed to get run: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to get run")
		return
	}

	writeJSON(w, http.StatusOK, run)
}

// TriggerResearch starts a research run in the background
func (h *Handlers) TriggerResearch(w http.ResponseWriter, r *http.Request) {
	if err := h.runner.StartRun(); err != nil {
		if errors.Is(err, services.ErrRunInProgress) {
			writeError(w, http.StatusConflict, "A research run is already in progress")
			return
		}
		h.log.Errorf("Failed to start research run: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to start research run")
		return
	}

	h.log.Info("Research run triggered via API")

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"status":  "started",
		"message": "Research run started",
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
