package auth

import "github.com/gorilla/mux"

func RegisterRoutes(router *mux.Router, handler *Handler, middleware *Middleware) {
	api := router.PathPrefix("/api/v1/auth").Subrouter()

	// Public
	api.HandleFunc("/register", handler.Register).Methods("POST")
	api.HandleFunc("/login", handler.Login).Methods("POST")
	api.HandleFunc("/google", handler.GoogleAuth).Methods("POST")
	api.HandleFunc("/refresh", handler.RefreshToken).Methods("POST")

	// Authenticated
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Authenticate)
	protected.HandleFunc("/logout", handler.Logout).Methods("POST")
	protected.HandleFunc("/logout-all", handler.LogoutAllDevices).Methods("POST")
	protected.HandleFunc("/password", handler.ChangePassword).Methods("PUT")
	protected.HandleFunc("/me", handler.Me).Methods("GET")
}
