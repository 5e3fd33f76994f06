// internal/payment/routes.go

package payment

import (
	"github.com/gorilla/mux"

	"github.com/nkrishnan/sambandh-backend/internal/auth"
)

// RegisterRoutes registers all payment routes
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/payments").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/plans", handler.GetPlans).Methods("GET")
	api.HandleFunc("/orders", handler.CreateOrder).Methods("POST")
	api.HandleFunc("/verify", handler.VerifyPayment).Methods("POST")
	api.HandleFunc("/subscription", handler.GetSubscriptionStatus).Methods("GET")
	api.HandleFunc("/history", handler.GetPaymentHistory).Methods("GET")
	api.HandleFunc("/{id:[0-9]+}/invoice", handler.GetInvoice).Methods("GET")

	admin := api.PathPrefix("").Subrouter()
	admin.Use(authMiddleware.RequireAdmin)
	admin.HandleFunc("/{id:[0-9]+}/refund", handler.RefundPayment).Methods("POST")
}
