// internal/profile/routes.go

package profile

import (
	"github.com/go-chi/chi/v5"

	"github.com/nkrishnan/sambandh-backend/internal/auth"
)

// RegisterRoutes registers all profile routes
func RegisterRoutes(r chi.Router, handler *Handler, authMiddleware *auth.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		// Own profile
		r.Post("/api/v1/profile/setup", handler.SetupProfile)
		r.Get("/api/v1/profile", handler.GetMyProfile)
		r.Put("/api/v1/profile", handler.UpdateProfile)
		r.Delete("/api/v1/profile", handler.DeleteProfile)
		r.Post("/api/v1/profile/picture", handler.UploadProfilePicture)
		r.Get("/api/v1/profile/completion", handler.GetProfileCompletion)
		r.Put("/api/v1/profile/deactivate", handler.DeactivateProfile)
		r.Put("/api/v1/profile/reactivate", handler.ReactivateProfile)

		// Other members
		r.Get("/api/v1/users/{id}/profile", handler.GetUserProfile)
		r.Get("/api/v1/search/profiles", handler.SearchProfiles)
	})
}
