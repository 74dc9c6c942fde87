// Package server exposes the commit-fetch and analysis operations over HTTP
// alongside the embedded browser UI.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/gitvitae/gitvitae/internal/analyzer"
	"github.com/gitvitae/gitvitae/internal/commit"
	"github.com/gitvitae/gitvitae/internal/git"
	"github.com/gitvitae/gitvitae/internal/projectctx"
	"github.com/gitvitae/gitvitae/internal/report"
)

//go:embed static
var staticFS embed.FS

// Server implements http.Handler for the web interface.
type Server struct {
	mux *http.ServeMux

	// newClient builds the chat client per analysis request, so a missing
	// API key only fails analysis calls. Replaced in tests.
	newClient func() (analyzer.ChatCompleter, error)
}

// New returns a server wired to the real OpenAI client.
func New() *Server {
	s := &Server{newClient: analyzer.NewClientFromEnv}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("POST /api/git-log", s.handleGitLog)
	s.mux.HandleFunc("POST /api/analyze-resume", s.handleAnalyze)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	s.mux.Handle("/", http.FileServerFS(static))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on the given port until the listener fails.
func (s *Server) ListenAndServe(port int) error {
	return http.ListenAndServe(fmt.Sprintf(":%d", port), s)
}

type gitLogRequest struct {
	RepoPath string `json:"repoPath"`
	Author   string `json:"author"`
	Since    string `json:"since"`
}

type gitLogResponse struct {
	Commits []commit.Record `json:"commits"`
	Count   int             `json:"count"`
}

func (s *Server) handleGitLog(w http.ResponseWriter, r *http.Request) {
	var req gitLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RepoPath == "" {
		writeError(w, http.StatusBadRequest, "repoPath is required")
		return
	}
	if req.Since == "" {
		req.Since = git.DefaultSince
	}

	commits, err := git.Log(git.LogQuery{RepoPath: req.RepoPath, Author: req.Author, Since: req.Since})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, git.ErrInvalidRepo) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}
	if commits == nil {
		commits = []commit.Record{}
	}
	writeJSON(w, http.StatusOK, gitLogResponse{Commits: commits, Count: len(commits)})
}

type analyzeRequest struct {
	Commits []commit.Record `json:"commits"`
}

type analyzeResponse struct {
	Analysis  report.Analysis `json:"analysis"`
	Formatted string          `json:"formatted"`
	Success   bool            `json:"success"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Commits) == 0 {
		writeError(w, http.StatusBadRequest, "commits array is required")
		return
	}

	client, err := s.newClient()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	a := analyzer.New(client)
	a.Progress = os.Stderr
	partials, err := a.Analyze(context.Background(), req.Commits, projectctx.Build("."))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	merged := report.Merge(partials)
	writeJSON(w, http.StatusOK, analyzeResponse{
		Analysis:  merged,
		Formatted: report.FormatText(merged),
		Success:   true,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
