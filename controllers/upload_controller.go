package controllers

import (
	"log"
	"net/http"

	"studybuddy_server/services"
)

// maxUploadBytes caps avatar uploads at 10 MB.
const maxUploadBytes = 10 << 20

// UploadController handles the local file relay for avatars
type UploadController struct {
	UploadService *services.UploadService
}

// NewUploadController creates a new UploadController instance
func NewUploadController(service *services.UploadService) *UploadController {
	return &UploadController{UploadService: service}
}

// HandleUpload accepts one multipart file under the "avatar" field and
// responds with the URL the file is served from.
func (uc *UploadController) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	imageURL, err := uc.UploadService.Save(header.Filename, file)
	if err != nil {
		log.Printf("❌ Upload failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"imageUrl": imageURL})
}
