// Package http exposes the serve-mode API: run listing, artifact retrieval,
// and pipeline triggering.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"meeting-minutes-pipeline/internal/app"
	"meeting-minutes-pipeline/internal/models"
	"meeting-minutes-pipeline/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// runRequest is the body of POST /v1/runs. Paths are resolved on the server
// host; serve mode is meant for a local or single-tenant deployment.
type runRequest struct {
	AudioPath      string `json:"audio_path,omitempty"`
	TranscriptJSON string `json:"transcript_json,omitempty"`
	TurnsPath      string `json:"turns_path,omitempty"`
}

type runResponse struct {
	RunID            string `json:"run_id"`
	Dir              string `json:"dir"`
	TranscriptPath   string `json:"transcript_path,omitempty"`
	ConversationPath string `json:"conversation_path,omitempty"`
	MinutesPath      string `json:"minutes_path,omitempty"`
	ActionsCSVPath   string `json:"actions_csv_path,omitempty"`
}

type runSummary struct {
	RunID string `json:"run_id"`
	Dir   string `json:"dir"`
}

// artifacts maps URL path suffixes to run-directory files.
var artifacts = map[string]func(*session.Session) string{
	"transcript":   (*session.Session).TranscriptTextPath,
	"conversation": (*session.Session).ConversationPath,
	"minutes":      (*session.Session).MinutesPath,
	"actions":      (*session.Session).ActionsCSVPath,
	"speakers":     (*session.Session).SpeakerMapPath,
}

// NewRouter constructs the HTTP router for serve mode.
func NewRouter(application *app.Application) http.Handler {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Health endpoints
	r.Get("/v1/liveness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/v1/readiness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	// API routes
	r.Route("/v1", func(r chi.Router) {
		r.Get("/runs", listRuns(application))
		r.Post("/runs", triggerRun(application))
		r.Get("/runs/{runID}/{artifact}", getArtifact(application))
	})

	return r
}

func listRuns(application *app.Application) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		root := application.Cfg.Service.OutputRoot
		entries, err := os.ReadDir(root)
		if err != nil {
			if os.IsNotExist(err) {
				writeJSON(w, http.StatusOK, []runSummary{})
				return
			}
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		runs := make([]runSummary, 0, len(entries))
		for _, e := range entries {
			if e.IsDir() {
				runs = append(runs, runSummary{
					RunID: e.Name(),
					Dir:   filepath.Join(root, e.Name()),
				})
			}
		}
		sort.Slice(runs, func(i, j int) bool { return runs[i].RunID < runs[j].RunID })
		writeJSON(w, http.StatusOK, runs)
	}
}

func triggerRun(application *app.Application) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req runRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if req.AudioPath == "" && req.TranscriptJSON == "" {
			writeError(w, http.StatusBadRequest,
				errors.New("audio_path or transcript_json is required"))
			return
		}
		res, err := application.Run(r.Context(), app.RunOptions{
			AudioPath:      req.AudioPath,
			TranscriptJSON: req.TranscriptJSON,
			TurnsPath:      req.TurnsPath,
			OutRoot:        application.Cfg.Service.OutputRoot,
		})
		if err != nil {
			status := http.StatusInternalServerError
			switch {
			case errors.Is(err, models.ErrNotFound):
				status = http.StatusNotFound
			case errors.Is(err, models.ErrMalformedInput):
				status = http.StatusUnprocessableEntity
			}
			writeError(w, status, err)
			return
		}
		writeJSON(w, http.StatusOK, runResponse{
			RunID:            res.Session.ID,
			Dir:              res.Session.Dir,
			TranscriptPath:   res.TranscriptPath,
			ConversationPath: res.ConversationPath,
			MinutesPath:      res.MinutesPath,
			ActionsCSVPath:   res.ActionsCSVPath,
		})
	}
}

func getArtifact(application *app.Application) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runID := chi.URLParam(r, "runID")
		// Reject traversal; run IDs are plain directory names.
		if runID != filepath.Base(runID) {
			writeError(w, http.StatusBadRequest, errors.New("invalid run id"))
			return
		}
		pathFn, ok := artifacts[chi.URLParam(r, "artifact")]
		if !ok {
			writeError(w, http.StatusNotFound, errors.New("unknown artifact"))
			return
		}
		sess, err := session.Open(filepath.Join(application.Cfg.Service.OutputRoot, runID))
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		path := pathFn(sess)
		if _, err := os.Stat(path); err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		http.ServeFile(w, r, path)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
