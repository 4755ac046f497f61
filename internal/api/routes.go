package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/holawaleh/dreamspacefrontend/internal/metrics"
	"github.com/holawaleh/dreamspacefrontend/internal/types"
	"github.com/holawaleh/dreamspacefrontend/internal/validation"
)

// RouterOption configures NewRouter.
type RouterOption func(*routerConfig)

type routerConfig struct {
	metrics     *metrics.Metrics
	metricsPath string
}

// WithMetrics instruments every request and serves the registry at path.
func WithMetrics(m *metrics.Metrics, path string) RouterOption {
	return func(c *routerConfig) {
		c.metrics = m
		c.metricsPath = path
	}
}

// NewRouter creates a new router with all routes configured
func NewRouter(h *Handler, opts ...RouterOption) *chi.Mux {
	var cfg routerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	r := chi.NewRouter()

	// Global middleware (all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)
	if cfg.metrics != nil {
		r.Use(cfg.metrics.Middleware)
		r.Method(http.MethodGet, cfg.metricsPath, cfg.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(BodyLimitMiddleware(MaxBodyBytes))

		r.Get("/health", h.Health)

		r.Route("/tech-posts", h.techPosts().routes)
		r.Route("/tutorials", h.tutorials().routes)
		r.Route("/software", h.software().routes)
		r.Route("/products", h.products().routes)

		r.Get("/admin/note", h.GetAdminNote)
		r.Post("/admin/note", h.SaveAdminNote)
	})

	return r
}

func (h *Handler) techPosts() resource[types.TechPost, types.NewTechPost, types.TechPostPatch] {
	return resource[types.TechPost, types.NewTechPost, types.TechPostPatch]{
		noun: "post", singular: "tech post", plural: "tech posts",
		list:          h.store.ListTechPosts,
		get:           h.store.GetTechPost,
		create:        h.store.CreateTechPost,
		update:        h.store.UpdateTechPost,
		remove:        h.store.DeleteTechPost,
		validateNew:   validation.ValidateNewTechPost,
		validatePatch: validation.ValidateTechPostPatch,
	}
}

func (h *Handler) tutorials() resource[types.Tutorial, types.NewTutorial, types.TutorialPatch] {
	return resource[types.Tutorial, types.NewTutorial, types.TutorialPatch]{
		noun: "tutorial", singular: "tutorial", plural: "tutorials",
		list:          h.store.ListTutorials,
		get:           h.store.GetTutorial,
		create:        h.store.CreateTutorial,
		update:        h.store.UpdateTutorial,
		remove:        h.store.DeleteTutorial,
		validateNew:   validation.ValidateNewTutorial,
		validatePatch: validation.ValidateTutorialPatch,
	}
}

func (h *Handler) software() resource[types.Software, types.NewSoftware, types.SoftwarePatch] {
	return resource[types.Software, types.NewSoftware, types.SoftwarePatch]{
		noun: "software", singular: "software", plural: "software",
		list:          h.store.ListSoftware,
		get:           h.store.GetSoftware,
		create:        h.store.CreateSoftware,
		update:        h.store.UpdateSoftware,
		remove:        h.store.DeleteSoftware,
		validateNew:   validation.ValidateNewSoftware,
		validatePatch: validation.ValidateSoftwarePatch,
	}
}

func (h *Handler) products() resource[types.Product, types.NewProduct, types.ProductPatch] {
	return resource[types.Product, types.NewProduct, types.ProductPatch]{
		noun: "product", singular: "product", plural: "products",
		list:          h.store.ListProducts,
		get:           h.store.GetProduct,
		create:        h.store.CreateProduct,
		update:        h.store.UpdateProduct,
		remove:        h.store.DeleteProduct,
		validateNew:   validation.ValidateNewProduct,
		validatePatch: validation.ValidateProductPatch,
	}
}
