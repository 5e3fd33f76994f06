// internal/notification/routes.go

package notification

import (
	"github.com/gorilla/mux"

	"github.com/nkrishnan/sambandh-backend/internal/auth"
)

// RegisterRoutes registers all notification routes
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/notifications").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.GetNotifications).Methods("GET")
	api.HandleFunc("/read-all", handler.MarkAllAsRead).Methods("PUT")
	api.HandleFunc("/preferences", handler.GetPreferences).Methods("GET")
	api.HandleFunc("/preferences", handler.UpdatePreferences).Methods("PUT")
	api.HandleFunc("/{id:[0-9]+}/read", handler.MarkAsRead).Methods("PUT")
	api.HandleFunc("/{id:[0-9]+}", handler.DeleteNotification).Methods("DELETE")
}
