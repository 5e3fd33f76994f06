package horoscope

import (
	"encoding/json"
	"net/http"

	"github.com/nkrishnan/sambandh-backend/internal/common/storage"
	"github.com/nkrishnan/sambandh-backend/internal/common/utils"
)

type Handler struct {
	service Service
	uploads storage.UploadService
}

func NewHandler(service Service, uploads storage.UploadService) *Handler {
	return &Handler{service: service, uploads: uploads}
}

func (h *Handler) SaveHoroscope(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	var req SaveHoroscopeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	chart, err := h.service.Save(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case ErrHoroscopeExists:
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case ErrMissingBirthDetails, ErrInvalidBirthTime:
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save horoscope")
		}
		return
	}

	utils.RespondWithData(w, http.StatusCreated, chart)
}

func (h *Handler) GetHoroscope(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	chart, err := h.service.Get(r.Context(), userID)
	if err != nil {
		if err == ErrHoroscopeNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "Horoscope not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get horoscope")
		return
	}

	utils.RespondWithData(w, http.StatusOK, chart)
}

func (h *Handler) UpdateHoroscope(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	var req SaveHoroscopeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	chart, err := h.service.Update(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case ErrHoroscopeNotFound:
			utils.RespondWithError(w, http.StatusNotFound, "Horoscope not found")
		case ErrMissingBirthDetails, ErrInvalidBirthTime:
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update horoscope")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, chart)
}

// GetHoroscopeMatch scores the caller against a partner. A missing
// chart on either side returns a precondition failure with a clear
// message, not a generic 500.
func (h *Handler) GetHoroscopeMatch(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	report, err := h.service.Match(r.Context(), userID, req.PartnerUserID)
	if err != nil {
		switch err {
		case ErrOwnHoroscopeMissing, ErrPartnerChartMissing:
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to calculate horoscope match")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, report)
}

func (h *Handler) UploadKundliImage(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to parse upload")
		return
	}

	file, header, err := r.FormFile("kundli")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Please upload a file")
		return
	}
	defer file.Close()

	url, err := h.uploads.UploadFile(r.Context(), file, header, "kundli")
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to upload kundli image")
		return
	}

	if err := h.service.SetKundliImage(r.Context(), userID, url); err != nil {
		if err == ErrHoroscopeNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "Horoscope not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save kundli image")
		return
	}

	utils.RespondWithData(w, http.StatusOK, map[string]string{"url": url})
}
