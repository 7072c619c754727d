package routes

import (
	"net/http"

	"studybuddy_server/controllers"
	"studybuddy_server/services"

	"github.com/gorilla/mux"
)

// RegisterUploadRoutes sets up the file relay endpoint and static serving of
// previously uploaded files.
func RegisterUploadRoutes(r *mux.Router, uploadService *services.UploadService) {
	controller := controllers.NewUploadController(uploadService)

	r.HandleFunc("/upload", controller.HandleUpload).Methods("POST")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadService.Dir))),
	).Methods("GET")
}
