package http

import (
	"net/http"
	"time"

	"github.com/fjod/go_storefront/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Handlers struct {
	Products *ProductHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
}

type RouterConfig struct {
	RequestTimeout  time.Duration
	Metrics         *metrics.Metrics
	Gatherer        prometheus.Gatherer
	CheckoutLimiter *SessionLimiter
}

func NewRouter(h Handlers, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware(cfg.Metrics))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(cfg.Gatherer))
	}

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Products.List)
			r.Post("/reload", h.Products.Reload)
			r.Get("/{product_id}", h.Products.Get)
		})
		r.Get("/categories", h.Products.Categories)

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware)

			r.Get("/session", h.Cart.GetSession)
			r.Delete("/session", h.Cart.EndSession)
			r.Put("/session/currency", h.Cart.SetCurrency)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.Cart.GetCart)
				r.Post("/open", h.Cart.Open)
				r.Post("/close", h.Cart.Close)
				r.Post("/items", h.Cart.AddItem)
				r.Put("/items/{product_id}", h.Cart.UpdateQuantity)
				r.Delete("/items/{product_id}", h.Cart.RemoveItem)
			})

			r.Route("/checkout", func(r chi.Router) {
				// widget continuations report a payment that already happened
				r.Post("/payment/success", h.Checkout.PaymentSuccess)
				r.Post("/payment/failure", h.Checkout.PaymentFailure)

				r.Group(func(r chi.Router) {
					r.Use(RateLimitMiddleware(cfg.CheckoutLimiter))
					r.Post("/proceed", h.Checkout.Proceed)
					r.Patch("/contact", h.Checkout.UpdateContactField)
					r.Post("/contact", h.Checkout.SubmitContact)
					r.Post("/retry", h.Checkout.Retry)
				})
			})
		})
	})

	return otelhttp.NewHandler(r, "storefront")
}
