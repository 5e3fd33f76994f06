// internal/payment/handlers.go

package payment

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nkrishnan/sambandh-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetPlans(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithData(w, http.StatusOK, h.service.GetPlans(r.Context()))
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.CreateOrder(r.Context(), userID, &req)
	if err != nil {
		if err == ErrInvalidPlan {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, resp)
}

func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	var req VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.service.VerifyPayment(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case ErrInvalidSignature:
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case ErrPaymentNotFound:
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case ErrUnauthorized:
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		case ErrAlreadyProcessed:
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to verify payment")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, p)
}

func (h *Handler) GetSubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	status, err := h.service.GetSubscriptionStatus(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get subscription status")
		return
	}

	utils.RespondWithData(w, http.StatusOK, status)
}

func (h *Handler) GetPaymentHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	payments, err := h.service.GetPaymentHistory(r.Context(), userID, limit, offset)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get payment history")
		return
	}

	utils.RespondWithData(w, http.StatusOK, payments)
}

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	paymentID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payment ID")
		return
	}

	invoice, err := h.service.GenerateInvoice(r.Context(), userID, paymentID)
	if err != nil {
		switch err {
		case ErrPaymentNotFound:
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case ErrUnauthorized:
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate invoice")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, invoice)
}

// RefundPayment is an admin operation
func (h *Handler) RefundPayment(w http.ResponseWriter, r *http.Request) {
	paymentID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payment ID")
		return
	}

	var req RefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.service.RefundPayment(r.Context(), paymentID, req.Reason)
	if err != nil {
		switch err {
		case ErrPaymentNotFound:
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case ErrNotRefundable, ErrRefundWindowClosed:
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to process refund")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, p)
}
