package match

import (
	"github.com/gorilla/mux"

	"github.com/nkrishnan/sambandh-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/matches").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/suggestions", handler.GetSuggestions).Methods("GET")
	api.HandleFunc("/compatibility/{userId:[0-9]+}", handler.GetCompatibility).Methods("GET")

	api.HandleFunc("/interests", handler.SendInterest).Methods("POST")
	api.HandleFunc("/interests", handler.GetInterests).Methods("GET")
	api.HandleFunc("/interests/{id:[0-9]+}/respond", handler.RespondToInterest).Methods("PUT")
	api.HandleFunc("/interests/{id:[0-9]+}", handler.WithdrawInterest).Methods("DELETE")
}
