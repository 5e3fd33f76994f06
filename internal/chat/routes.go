// internal/chat/routes.go

package chat

import (
	"github.com/gorilla/mux"

	"github.com/nkrishnan/sambandh-backend/internal/auth"
)

// RegisterRoutes registers all chat routes
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/chat").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/conversations", handler.GetConversations).Methods("GET")
	api.HandleFunc("/conversations/{id:[0-9]+}/messages", handler.GetMessages).Methods("GET")
	api.HandleFunc("/conversations/{id:[0-9]+}/messages", handler.SendMessage).Methods("POST")
	api.HandleFunc("/conversations/{id:[0-9]+}/read", handler.MarkRead).Methods("PUT")
	api.HandleFunc("/unread", handler.GetUnreadCount).Methods("GET")
	api.HandleFunc("/ws", handler.ServeWS).Methods("GET")
}
