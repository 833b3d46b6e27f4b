package api

import (
	"net/http"
	"time"

	_ "bonusrates/docs"
	"bonusrates/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	swagger "github.com/swaggo/http-swagger"
)

// NewRouter mounts the bonus rate API. staticDir is served at / when not empty.
func NewRouter(rateHandler *handler.Handler, staticDir string) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)

	router.Get("/health", handler.Health)

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/bonus-rates", rateHandler.GetRates)
		r.Post("/bonus-rates", rateHandler.UpdateRates)
	})

	if staticDir != "" {
		router.Handle("/*", http.FileServer(http.Dir(staticDir)))
	}
	return router
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			logrus.WithFields(logrus.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  middleware.GetReqID(r.Context()),
			}).Debug("HTTP request handled")
		}()
		next.ServeHTTP(ww, r)
	})
}
