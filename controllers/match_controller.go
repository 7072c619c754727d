package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"studybuddy_server/services"

	"github.com/gorilla/mux"
)

// MatchController handles HTTP requests for the partner-matching flow
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController creates a new MatchController instance
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

type enqueueRequest struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarURL"`
}

// StartSearch enqueues the user and immediately runs the find/claim loop.
// The response says whether a partner was found; if not, the user stays in
// the pool and will be claimed by a later searcher.
func (mc *MatchController) StartSearch(w http.ResponseWriter, r *http.Request) {
	var payload enqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	if _, err := mc.MatchService.Enqueue(r.Context(), payload.UserID, payload.Name, payload.AvatarURL); err != nil {
		log.Printf("❌ Enqueue failed for %s: %v", payload.UserID, err)
		writeError(w, http.StatusServiceUnavailable, "could not join the waiting pool, try again")
		return
	}

	pairing, err := mc.MatchService.Search(r.Context(), payload.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNotSearching) {
			// Cancelled mid-flight; nothing to report.
			writeJSON(w, http.StatusOK, map[string]interface{}{"matched": false, "searching": false})
			return
		}
		log.Printf("❌ Search failed for %s: %v", payload.UserID, err)
		writeError(w, http.StatusServiceUnavailable, "match attempt failed, try again")
		return
	}

	if pairing == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"matched": false, "searching": true})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"matched": true, "pairing": pairing})
}

// Enqueue adds the user to the waiting pool without running the match loop.
func (mc *MatchController) Enqueue(w http.ResponseWriter, r *http.Request) {
	var payload enqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	entry, err := mc.MatchService.Enqueue(r.Context(), payload.UserID, payload.Name, payload.AvatarURL)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "could not join the waiting pool, try again")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// CancelSearch removes the user's waiting entry. Idempotent.
func (mc *MatchController) CancelSearch(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	if err := mc.MatchService.Dequeue(r.Context(), userID); err != nil {
		writeError(w, http.StatusServiceUnavailable, "could not cancel the search, try again")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "search cancelled"})
}

// GetPairing is the polling fallback for clients that missed the push
// notification: it reads the pairing stored under the user's own key.
func (mc *MatchController) GetPairing(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	pairing, err := mc.MatchService.PairingFor(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrPairingNotFound) {
			writeJSON(w, http.StatusOK, map[string]interface{}{"matched": false})
			return
		}
		writeError(w, http.StatusServiceUnavailable, "could not fetch pairing, try again")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"matched": true, "pairing": pairing})
}
