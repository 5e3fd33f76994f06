// internal/profile/handlers.go

package profile

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nkrishnan/sambandh-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) SetupProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	var req ProfileSetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.service.SetupProfile(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case ErrProfileExists:
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case ErrUnderage, ErrInvalidBirthDate:
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create profile")
		}
		return
	}

	utils.RespondWithData(w, http.StatusCreated, profile)
}

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	profile, err := h.service.GetMyProfile(r.Context(), userID)
	if err != nil {
		if err == ErrProfileNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	utils.RespondWithData(w, http.StatusOK, profile)
}

func (h *Handler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	viewerID := r.Context().Value("userID").(int64)

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), viewerID, userID)
	if err != nil {
		if err == ErrProfileNotFound || err == ErrProfileHidden {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	utils.RespondWithData(w, http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case ErrProfileNotFound:
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
		case ErrUnderage, ErrInvalidBirthDate:
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, profile)
}

func (h *Handler) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to parse upload")
		return
	}

	file, header, err := r.FormFile("picture")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Please upload a file")
		return
	}
	defer file.Close()

	url, err := h.service.UploadProfilePicture(r.Context(), userID, file, header)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to upload picture")
		return
	}

	utils.RespondWithData(w, http.StatusOK, map[string]string{"url": url})
}

func (h *Handler) GetProfileCompletion(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	completion, err := h.service.GetCompletion(r.Context(), userID)
	if err != nil {
		if err == ErrProfileNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get completion")
		return
	}

	utils.RespondWithData(w, http.StatusOK, completion)
}

// SearchProfiles reads filters from query parameters
func (h *Handler) SearchProfiles(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	filter := parseSearchFilter(r)
	profiles, err := h.service.Search(r.Context(), userID, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to search profiles")
		return
	}

	utils.RespondWithData(w, http.StatusOK, profiles)
}

func (h *Handler) DeactivateProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	if err := h.service.SetActive(r.Context(), userID, false); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to deactivate profile")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Profile deactivated")
}

func (h *Handler) ReactivateProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	if err := h.service.SetActive(r.Context(), userID, true); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reactivate profile")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Profile reactivated")
}

func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	if err := h.service.DeleteProfile(r.Context(), userID); err != nil {
		if err == ErrProfileNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete profile")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Profile deleted")
}

func parseSearchFilter(r *http.Request) *SearchFilter {
	q := r.URL.Query()
	filter := &SearchFilter{}

	strParam := func(key string) *string {
		if v := q.Get(key); v != "" {
			return &v
		}
		return nil
	}
	intParam := func(key string) *int {
		if v := q.Get(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return &n
			}
		}
		return nil
	}
	listParam := func(key string) []string {
		if v := q.Get(key); v != "" {
			return strings.Split(v, ",")
		}
		return nil
	}

	filter.Gender = strParam("gender")
	filter.MinAge = intParam("min_age")
	filter.MaxAge = intParam("max_age")
	filter.MinHeight = intParam("min_height")
	filter.MaxHeight = intParam("max_height")
	filter.MaritalStatus = listParam("marital_status")
	filter.Education = listParam("education")
	filter.Profession = listParam("profession")
	filter.City = strParam("city")
	filter.State = strParam("state")
	filter.SubCommunity = strParam("sub_community")
	filter.MotherTongue = strParam("mother_tongue")

	if n := intParam("limit"); n != nil {
		filter.Limit = *n
	}
	if n := intParam("offset"); n != nil {
		filter.Offset = *n
	}

	return filter
}
