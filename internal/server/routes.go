package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/lazypower/stability/internal/reward"
)

// writeError marshals the message properly, so an error containing quotes
// still produces valid JSON.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) handleGetScore(w http.ResponseWriter, r *http.Request) {
	score, err := s.eng.Score()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	flags, err := s.eng.Flags()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	done := map[string]bool{}
	counts := map[string]int{}
	for _, kind := range reward.Kinds() {
		done[kind] = false
		counts[kind] = 0
	}
	for _, f := range flags {
		done[f.Kind] = f.DoneToday
		counts[f.Kind] = f.CountToday
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"score":  score,
		"done":   done,
		"counts": counts,
	})
}

func (s *Server) handleGetLedger(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := s.eng.RecentLedger(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type entryJSON struct {
		Amount    float64 `json:"amount"`
		Kind      string  `json:"kind"`
		Cause     string  `json:"cause"`
		Timestamp int64   `json:"timestamp"`
	}
	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryJSON{Amount: e.Amount, Kind: e.Kind, Cause: e.Cause, Timestamp: e.CreatedAt})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"entries": out})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	days := 0
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid days")
			return
		}
		days = n
	}

	entries, err := s.eng.History(days, s.now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type dayJSON struct {
		Day   string  `json:"day"`
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	out := make([]dayJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, dayJSON{Day: e.Day, Label: e.Label, Score: e.Score})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"days": out})
}

func (s *Server) handleCompleteActivity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind            string  `json:"kind"`
		DurationSeconds float64 `json:"duration_seconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if !reward.Known(req.Kind) {
		writeError(w, http.StatusBadRequest, "unknown activity kind")
		return
	}

	duration := time.Duration(req.DurationSeconds * float64(time.Second))
	magnitude, err := reward.ForKind(req.Kind, duration)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Kind == reward.KindEmotionLog && magnitude == 0 {
		writeError(w, http.StatusBadRequest, "recording too short to count")
		return
	}

	res, err := s.eng.CompleteActivity(req.Kind, magnitude, s.now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"rewarded": res.Rewarded,
		"amount":   res.Amount,
		"score":    res.Score,
	})
}

func (s *Server) handleUsageSync(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CumulativeSeconds float64 `json:"cumulative_seconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	penalty, err := s.eng.ApplyExternalUsage(req.CumulativeSeconds, s.now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	score, err := s.eng.Score()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"penalty": penalty,
		"score":   score,
	})
}
