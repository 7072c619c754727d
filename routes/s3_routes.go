package routes

import (
	"studybuddy_server/controllers"
	"studybuddy_server/services"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up routes for S3 presigned-URL operations
func RegisterS3Routes(r *mux.Router, s3Service *services.S3Service) {
	controller := controllers.NewS3Controller(s3Service)

	r.HandleFunc("/generate-presigned-url", controller.GeneratePresignedURL).Methods("POST")
	r.HandleFunc("/get-presigned-read-url", controller.GetPresignedReadURL).Methods("POST")
}
