package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures the router: health check plus the /api surface.
func SetupRoutes(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))

	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Route("/brands", func(r chi.Router) {
			r.Post("/", h.CreateBrand)
			r.Get("/", h.ListBrands)
			r.Get("/{brandID}", h.GetBrand)
			r.Patch("/{brandID}", h.UpdateBrand)
			r.Delete("/{brandID}", h.DeleteBrand)
			r.Post("/{brandID}/features", h.AttachBrandFeature)
			r.Get("/{brandID}/features", h.ListBrandFeatures)
			r.Patch("/features/{brandFeatureID}", h.UpdateBrandFeature)
			r.Delete("/features/{brandFeatureID}", h.DetachBrandFeature)
			r.Get("/{brandID}/templates", h.ListBrandTemplates)
		})

		r.Route("/features", func(r chi.Router) {
			r.Post("/", h.CreateFeature)
			r.Get("/", h.ListFeatures)
		})

		r.Route("/templates", func(r chi.Router) {
			r.Post("/", h.CreateTemplate)
			r.Patch("/{templateID}", h.UpdateTemplate)
			r.Delete("/{templateID}", h.DeleteTemplate)
			r.Post("/{templateID}/default", h.SetDefaultTemplate)
		})

		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", h.CreateCampaign)
			r.Get("/", h.ListCampaigns)
			r.Patch("/{campaignID}", h.UpdateCampaign)
			r.Post("/{campaignID}/features", h.AddCampaignFeature)
			r.Get("/{campaignID}/features", h.ListCampaignFeatures)
			r.Patch("/features/{campaignFeatureID}", h.UpdateCampaignFeature)
			r.Delete("/features/{campaignFeatureID}", h.RemoveCampaignFeature)
		})

		r.Route("/leads", func(r chi.Router) {
			r.Post("/", h.IngestLead)
			r.Post("/send", h.SendEmail)
			r.Get("/{leadID}", h.GetLead)
			r.Get("/{leadID}/emails", h.ListLeadEmails)
			r.Post("/{leadID}/preview", h.PreviewLead)
		})
	})

	return r
}
