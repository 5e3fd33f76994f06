package match

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

func (h *Handler) SendInterest(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	var req SendInterestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	interest, err := h.service.SendInterest(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case ErrCannotInterestSelf, ErrProfileMissing, ErrPartnerProfileMissing:
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case ErrAlreadyInterested:
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send interest")
		}
		return
	}

	utils.RespondWithData(w, http.StatusCreated, interest)
}

func (h *Handler) RespondToInterest(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	interestID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid interest ID")
		return
	}

	var req RespondInterestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	interest, err := h.service.RespondToInterest(r.Context(), interestID, userID, &req)
	if err != nil {
		switch err {
		case ErrInterestNotFound:
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case ErrUnauthorized:
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		case ErrAlreadyResponded:
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to respond to interest")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, interest)
}

func (h *Handler) WithdrawInterest(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	interestID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid interest ID")
		return
	}

	if err := h.service.WithdrawInterest(r.Context(), interestID, userID); err != nil {
		switch err {
		case ErrInterestNotFound:
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case ErrUnauthorized:
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		case ErrAlreadyResponded:
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to withdraw interest")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, map[string]string{"message": "Interest withdrawn"})
}

// GetInterests lists interests for the caller. The direction query
// parameter selects sent, received or both.
func (h *Handler) GetInterests(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)
	direction := r.URL.Query().Get("direction")

	interests, err := h.service.GetInterests(r.Context(), userID, direction)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get interests")
		return
	}

	utils.RespondWithData(w, http.StatusOK, interests)
}

func (h *Handler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	suggestions, err := h.service.GetSuggestions(r.Context(), userID)
	if err != nil {
		if err == ErrProfileMissing {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get suggestions")
		return
	}

	utils.RespondWithData(w, http.StatusOK, suggestions)
}

func (h *Handler) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	partnerID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	report, err := h.service.GetCompatibility(r.Context(), userID, partnerID)
	if err != nil {
		switch err {
		case ErrCannotInterestSelf, ErrProfileMissing, ErrPartnerProfileMissing:
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to calculate compatibility")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, report)
}
