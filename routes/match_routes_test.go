package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"studybuddy_server/models"
	"studybuddy_server/services"

	"github.com/gorilla/mux"
)

func newMatchRouter(t *testing.T) *mux.Router {
	t.Helper()
	svc := services.NewMatchService(services.NewMemoryMatchStore(), nil, nil)

	r := mux.NewRouter()
	RegisterMatchRoutes(r, svc)
	return r
}

func postJSON(t *testing.T, router *mux.Router, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type searchResponse struct {
	Matched   bool            `json:"matched"`
	Searching bool            `json:"searching"`
	Pairing   *models.Pairing `json:"pairing"`
}

func TestSearchEndpoint_FirstUserWaitsSecondUserMatches(t *testing.T) {
	router := newMatchRouter(t)

	rec := postJSON(t, router, "/api/match/search", map[string]string{"userId": "alice", "name": "Alice"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var first searchResponse
	json.Unmarshal(rec.Body.Bytes(), &first)
	if first.Matched || !first.Searching {
		t.Fatalf("expected alice to stay searching, got %+v", first)
	}

	rec = postJSON(t, router, "/api/match/search", map[string]string{"userId": "bob", "name": "Bob"})
	var second searchResponse
	json.Unmarshal(rec.Body.Bytes(), &second)
	if !second.Matched || second.Pairing == nil {
		t.Fatalf("expected bob to match alice, got %s", rec.Body.String())
	}
	if second.Pairing.PartnerOf("alice") == -1 || second.Pairing.PartnerOf("bob") == -1 {
		t.Errorf("pairing does not name both users: %+v", second.Pairing)
	}

	// Both participants can poll the pairing afterwards.
	for _, userID := range []string{"alice", "bob"} {
		req := httptest.NewRequest(http.MethodGet, "/api/match/pairing?userId="+userID, nil)
		pollRec := httptest.NewRecorder()
		router.ServeHTTP(pollRec, req)
		var poll searchResponse
		json.Unmarshal(pollRec.Body.Bytes(), &poll)
		if !poll.Matched {
			t.Errorf("%s cannot see the pairing via polling: %s", userID, pollRec.Body.String())
		}
	}
}

func TestSearchEndpoint_RequiresUserID(t *testing.T) {
	router := newMatchRouter(t)

	rec := postJSON(t, router, "/api/match/search", map[string]string{"name": "Nameless"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCancelEndpoint_Idempotent(t *testing.T) {
	router := newMatchRouter(t)

	postJSON(t, router, "/api/match/queue", map[string]string{"userId": "alice", "name": "Alice"})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/api/match/queue/alice", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("cancel attempt %d: expected 200, got %d", i+1, rec.Code)
		}
	}
}

func TestPairingEndpoint_NoMatchYet(t *testing.T) {
	router := newMatchRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/match/pairing?userId=alice", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp searchResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Matched {
		t.Errorf("expected matched=false, got %s", rec.Body.String())
	}
}

func TestQueueEndpoint_ReenqueueOverwrites(t *testing.T) {
	router := newMatchRouter(t)

	for i := 0; i < 3; i++ {
		rec := postJSON(t, router, "/api/match/queue", map[string]string{
			"userId": "alice",
			"name":   fmt.Sprintf("Alice v%d", i),
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("enqueue %d: expected 200, got %d", i, rec.Code)
		}
	}

	// A second user still matches exactly once, against the single entry.
	rec := postJSON(t, router, "/api/match/search", map[string]string{"userId": "bob", "name": "Bob"})
	var resp searchResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if !resp.Matched {
		t.Fatalf("expected bob to match, got %s", rec.Body.String())
	}
	if resp.Pairing.Names[resp.Pairing.PartnerOf("bob")] != "Alice v2" {
		t.Errorf("expected the latest enqueue to win, got %+v", resp.Pairing.Names)
	}
}
