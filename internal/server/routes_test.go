package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCompleteActivity(t *testing.T) {
	srv := testServer(t)

	body := `{"kind":"meditation-session","duration_seconds":1200}`
	req := httptest.NewRequest("POST", "/api/activities", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		Rewarded bool    `json:"rewarded"`
		Amount   float64 `json:"amount"`
		Score    float64 `json:"score"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Rewarded {
		t.Error("expected reward on first completion")
	}
	if resp.Amount != 20 {
		t.Errorf("amount = %f, want 20 (20 minutes)", resp.Amount)
	}
	if resp.Score != 70 {
		t.Errorf("score = %f, want 70", resp.Score)
	}

	// Same day: no second reward.
	req = httptest.NewRequest("POST", "/api/activities", strings.NewReader(body))
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Rewarded {
		t.Error("second completion same day should not reward")
	}
	if resp.Score != 70 {
		t.Errorf("score = %f, want 70", resp.Score)
	}
}

func TestCompleteActivityUnknownKind(t *testing.T) {
	srv := testServer(t)

	body := `{"kind":"doomscrolling","duration_seconds":60}`
	req := httptest.NewRequest("POST", "/api/activities", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCompleteActivityShortEmotionLog(t *testing.T) {
	srv := testServer(t)

	body := `{"kind":"emotion-log","duration_seconds":2}`
	req := httptest.NewRequest("POST", "/api/activities", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d for a too-short recording", w.Code, http.StatusBadRequest)
	}
}

func TestUsageSyncIdempotent(t *testing.T) {
	srv := testServer(t)

	post := func() (float64, float64) {
		t.Helper()
		body := `{"cumulative_seconds":120}`
		req := httptest.NewRequest("POST", "/api/usage", strings.NewReader(body))
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
		}
		var resp struct {
			Penalty float64 `json:"penalty"`
			Score   float64 `json:"score"`
		}
		json.Unmarshal(w.Body.Bytes(), &resp)
		return resp.Penalty, resp.Score
	}

	penalty, score := post()
	if penalty != 2 {
		t.Errorf("penalty = %f, want 2", penalty)
	}
	if score != 48 {
		t.Errorf("score = %f, want 48", score)
	}

	penalty, score = post()
	if penalty != 0 {
		t.Errorf("re-sync penalty = %f, want 0", penalty)
	}
	if score != 48 {
		t.Errorf("re-sync score = %f, want 48", score)
	}
}

func TestGetLedger(t *testing.T) {
	srv := testServer(t)

	body := `{"kind":"flow-session","duration_seconds":300}`
	req := httptest.NewRequest("POST", "/api/activities", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	req = httptest.NewRequest("GET", "/api/ledger?limit=10", nil)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Entries []struct {
			Amount float64 `json:"amount"`
			Kind   string  `json:"kind"`
			Cause  string  `json:"cause"`
		} `json:"entries"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(resp.Entries))
	}
	if resp.Entries[0].Kind != "gain" {
		t.Errorf("kind = %q, want gain", resp.Entries[0].Kind)
	}
	if resp.Entries[0].Cause != "flow-session (first)" {
		t.Errorf("cause = %q, want flow-session (first)", resp.Entries[0].Cause)
	}
}

func TestGetHistoryNeverEmpty(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest("GET", "/api/history?days=7", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Days []struct {
			Day   string  `json:"day"`
			Score float64 `json:"score"`
		} `json:"days"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Days) != 7 {
		t.Fatalf("days = %d, want 7 (placeholder series)", len(resp.Days))
	}
	if resp.Days[6].Day != "2026-09-01" {
		t.Errorf("last day = %q, want 2026-09-01", resp.Days[6].Day)
	}
}

func TestBadJSONRequests(t *testing.T) {
	srv := testServer(t)

	paths := []string{"/api/activities", "/api/usage"}
	for _, p := range paths {
		req := httptest.NewRequest("POST", p, strings.NewReader("{not json"))
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("POST %s: status = %d, want %d", p, w.Code, http.StatusBadRequest)
		}
	}
}

func TestErrorBodiesAreValidJSON(t *testing.T) {
	srv := testServer(t)

	// A kind with a quote lands in the error message verbatim; the body
	// must still decode.
	body := `{"kind":"an \"odd\" kind","duration_seconds":60}`
	req := httptest.NewRequest("POST", "/api/activities", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body is not valid JSON: %v; body: %s", err, w.Body.String())
	}
	if resp["error"] == "" {
		t.Error("expected error message in body")
	}
}
