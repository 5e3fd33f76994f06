package horoscope

import (
	"github.com/gorilla/mux"
	"github.com/nkrishnan/sambandh-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/horoscope").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.SaveHoroscope).Methods("POST")
	api.HandleFunc("", handler.GetHoroscope).Methods("GET")
	api.HandleFunc("", handler.UpdateHoroscope).Methods("PUT")
	api.HandleFunc("/match", handler.GetHoroscopeMatch).Methods("POST")
	api.HandleFunc("/upload", handler.UploadKundliImage).Methods("POST")
}
