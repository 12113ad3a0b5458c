package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"

	"github.com/shahar-caura/qalcrun/internal/classify"
	"github.com/shahar-caura/qalcrun/internal/launcher"
)

type healthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int    `json:"uptime_seconds"`
	EngineFound   bool   `json:"engine_found"`
	EnginePath    string `json:"engine_path,omitempty"`
}

type resultItem struct {
	Title    string `json:"title"`
	SubTitle string `json:"subtitle"`
	Score    int    `json:"score"`
}

type queryResponse struct {
	Results []resultItem `json:"results"`
}

type classifyResponse struct {
	Query    string   `json:"query"`
	Evaluate bool     `json:"evaluate"`
	Checks   []string `json:"checks"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	path, found := s.plugin.Locator.Path()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Version:       s.version,
		UptimeSeconds: int(time.Since(s.startTime).Seconds()),
		EngineFound:   found,
		EnginePath:    path,
	})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if err := s.validator.validate(r, "/query"); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var q string
	var explicit *bool
	if err := runtime.BindQueryParameter("form", true, true, "q", r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "explicit", r.URL.Query(), &explicit); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	query := launcher.Query{Search: q, RawQuery: q}
	if explicit != nil && *explicit {
		query = query.MarkExplicit(s.keyword)
	}

	results := s.plugin.Query(r.Context(), query)

	items := make([]resultItem, len(results))
	for i, res := range results {
		items[i] = resultItem{Title: res.Title, SubTitle: res.SubTitle, Score: res.Score}
	}
	writeJSON(w, http.StatusOK, queryResponse{Results: items})
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	if err := s.validator.validate(r, "/classify"); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var q string
	if err := runtime.BindQueryParameter("form", true, true, "q", r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	checks := classify.Matches(strings.TrimSpace(q))
	if checks == nil {
		checks = []string{}
	}
	writeJSON(w, http.StatusOK, classifyResponse{
		Query:    q,
		Evaluate: len(checks) > 0,
		Checks:   checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Code: status, Message: err.Error()})
}
