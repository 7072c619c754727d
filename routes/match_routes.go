package routes

import (
	"studybuddy_server/controllers"
	"studybuddy_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for partner matching under /api/match
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewMatchController(matchService)

	matchRouter := r.PathPrefix("/api/match").Subrouter()
	matchRouter.HandleFunc("/search", controller.StartSearch).Methods("POST")
	matchRouter.HandleFunc("/queue", controller.Enqueue).Methods("POST")
	matchRouter.HandleFunc("/queue/{userId}", controller.CancelSearch).Methods("DELETE")
	matchRouter.HandleFunc("/pairing", controller.GetPairing).Methods("GET")
}
