package routes

import (
	"studybuddy_server/controllers"
	"studybuddy_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes sets up routes for user profiles under /api/profiles
func RegisterUserProfileRoutes(r *mux.Router, userProfileService *services.UserProfileService) {
	controller := controllers.NewUserProfileController(userProfileService)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()
	profileRouter.HandleFunc("", controller.CreateProfile).Methods("POST")
	profileRouter.HandleFunc("/{userId}", controller.GetProfile).Methods("GET")
	profileRouter.HandleFunc("/{userId}", controller.UpdateProfile).Methods("PATCH")
	profileRouter.HandleFunc("/{userId}", controller.DeleteProfile).Methods("DELETE")
}
