package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"studybuddy_server/models"
	"studybuddy_server/services"

	"github.com/gorilla/mux"
)

// UserProfileController handles HTTP requests for user profiles
type UserProfileController struct {
	UserProfileService *services.UserProfileService
}

// NewUserProfileController creates a new UserProfileController instance
func NewUserProfileController(service *services.UserProfileService) *UserProfileController {
	return &UserProfileController{UserProfileService: service}
}

// CreateProfile stores a new user profile
func (uc *UserProfileController) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	created, err := uc.UserProfileService.AddUserProfile(r.Context(), profile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create profile")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetProfile fetches a user profile by id
func (uc *UserProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	profile, err := uc.UserProfileService.GetUserProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UpdateProfile updates the provided fields of an existing profile
func (uc *UserProfileController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var updates map[string]string
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if len(updates) == 0 {
		writeError(w, http.StatusBadRequest, "no fields to update")
		return
	}
	delete(updates, "userId") // the key is not updatable

	profile, err := uc.UserProfileService.UpdateUserProfile(r.Context(), userID, updates)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// DeleteProfile removes a user profile
func (uc *UserProfileController) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	if err := uc.UserProfileService.DeleteUserProfile(r.Context(), userID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete profile")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "profile deleted"})
}
