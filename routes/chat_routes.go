package routes

import (
	"studybuddy_server/controllers"
	"studybuddy_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up routes for buddy chat under /api/chat
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService) {
	controller := controllers.NewChatController(chatService)

	chatRouter := r.PathPrefix("/api/chat").Subrouter()
	chatRouter.HandleFunc("/messages", controller.HandleGetMessages).Methods("GET")
	chatRouter.HandleFunc("/messages", controller.HandleSendMessage).Methods("POST")
	chatRouter.HandleFunc("/read", controller.HandleMarkMessagesAsRead).Methods("POST")
}
