package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"studybuddy_server/services"
)

// S3Controller handles presigned-URL generation for direct-to-S3 avatars
type S3Controller struct {
	S3Service *services.S3Service
}

// NewS3Controller creates a new S3Controller instance
func NewS3Controller(service *services.S3Service) *S3Controller {
	return &S3Controller{S3Service: service}
}

// GeneratePresignedURL generates a presigned URL for S3 uploads
func (sc *S3Controller) GeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.FileName == "" || payload.FileType == "" {
		writeError(w, http.StatusBadRequest, "fileName and fileType are required")
		return
	}

	url, key, err := sc.S3Service.UploadURL(r.Context(), payload.FileName, payload.FileType)
	if err != nil {
		log.Printf("❌ Error generating presigned upload URL: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to generate presigned URL")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url, "fileName": key})
}

// GetPresignedReadURL generates a presigned URL for reading S3 objects
func (sc *S3Controller) GetPresignedReadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Key == "" {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	url, err := sc.S3Service.ReadURL(r.Context(), payload.Key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate read presigned URL")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
