package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/psxcreative/engine/internal/mail"
	"github.com/psxcreative/engine/internal/metrics"
	"github.com/psxcreative/engine/internal/pricing"
	"github.com/psxcreative/engine/internal/share"
)

const maxBodyBytes = 1 << 20

type server struct {
	engine   *pricing.Engine
	codec    *share.Codec
	composer *mail.Composer
	// sender is nil when email delivery is not configured.
	sender       mail.Sender
	metrics      *metrics.Metrics
	log          *zap.Logger
	emailTimeout time.Duration
	baseURL      string
	newRef       func() string
}

func (s *server) routes() http.Handler {
	if s.newRef == nil {
		s.newRef = uuid.NewString
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Get("/share/{token}", s.handleSharePage)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Post("/estimate", s.handleEstimate)
		r.Post("/estimate/content", s.handleContentEstimate)
		r.Post("/merch/estimate", s.handleMerchEstimate)
		r.Post("/store/total", s.handleStoreTotal)
		r.Post("/share", s.handleShareCreate)
		r.Get("/share/{token}", s.handleShareGet)
		r.Post("/submit", s.handleSubmit)
		r.Post("/submit-merch-order", s.handleSubmitMerchOrder)
	})

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
