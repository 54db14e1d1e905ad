package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

type searchRequest struct {
	Query   string `json:"query"`
	Partial bool   `json:"partial"`
}

// resultJSON mirrors the §6 Results format: {count, score, where}, score
// rendered to 8 decimal places.
type resultJSON struct {
	Count int    `json:"count"`
	Score string `json:"score"`
	Where string `json:"where"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		s.respondError(w, http.StatusBadRequest, "query is required")
		return
	}
	s.logger.Debug("search request", zap.String("query", req.Query), zap.Bool("partial", req.Partial))

	s.proc.ProcessLine(req.Query, req.Partial)
	results := s.proc.Results(req.Query, req.Partial)

	resp := make([]resultJSON, len(results))
	for i, res := range results {
		resp[i] = resultJSON{
			Count: res.Matches,
			Score: fmt.Sprintf("%.8f", res.Score),
			Where: res.Location,
		}
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"num_words":     s.idx.NumWords(),
		"num_locations": s.idx.NumCounts(),
		"num_counts":    s.idx.NumCounts(),
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
