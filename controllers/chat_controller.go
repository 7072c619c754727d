package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"studybuddy_server/services"
)

// ChatController struct
type ChatController struct {
	ChatService *services.ChatService
}

// NewChatController initializes the chat controller
func NewChatController(service *services.ChatService) *ChatController {
	return &ChatController{ChatService: service}
}

// HandleGetMessages fetches messages for a pairing, oldest first
func (c *ChatController) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	pairingID := r.URL.Query().Get("pairingId")
	if pairingID == "" {
		writeError(w, http.StatusBadRequest, "pairingId is required")
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	messages, err := c.ChatService.GetMessages(r.Context(), pairingID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch messages")
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// HandleSendMessage stores a message and broadcasts it to the pairing's room
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PairingID string `json:"pairingId"`
		SenderID  string `json:"senderId"`
		Sender    string `json:"sender"`
		Text      string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	message, err := c.ChatService.SendMessage(r.Context(), payload.PairingID, payload.SenderID, payload.Sender, payload.Text)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, message)
}

// HandleMarkMessagesAsRead marks the messages the user received as read
func (c *ChatController) HandleMarkMessagesAsRead(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PairingID string `json:"pairingId"`
		UserID    string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.PairingID == "" || payload.UserID == "" {
		writeError(w, http.StatusBadRequest, "pairingId and userId are required")
		return
	}

	if err := c.ChatService.MarkMessagesAsRead(r.Context(), payload.PairingID, payload.UserID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to mark messages as read")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "messages marked as read"})
}
