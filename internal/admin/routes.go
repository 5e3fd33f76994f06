// internal/admin/routes.go

package admin

import (
	"github.com/gorilla/mux"

	"github.com/nkrishnan/sambandh-backend/internal/auth"
)

// RegisterRoutes registers all admin routes
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/admin").Subrouter()
	api.Use(authMiddleware.Authenticate)
	api.Use(authMiddleware.RequireAdmin)

	api.HandleFunc("/stats", handler.GetPlatformStats).Methods("GET")
	api.HandleFunc("/members", handler.ListMembers).Methods("GET")
	api.HandleFunc("/members/{id:[0-9]+}/block", handler.BlockMember).Methods("PUT")
	api.HandleFunc("/members/{id:[0-9]+}/unblock", handler.UnblockMember).Methods("PUT")
}
