// Package coursecatalog собирает HTTP-приложение каталога курсов.
package coursecatalog

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	// Регистрация swagger-спецификации для /docs.
	_ "github.com/magabrotheeeer/course-catalog/docs"

	"github.com/magabrotheeeer/course-catalog/internal/catalog"
	"github.com/magabrotheeeer/course-catalog/internal/http/handlers/course/create"
	"github.com/magabrotheeeer/course-catalog/internal/http/handlers/course/deletion"
	"github.com/magabrotheeeer/course-catalog/internal/http/handlers/course/edit"
	"github.com/magabrotheeeer/course-catalog/internal/http/handlers/course/list"
	"github.com/magabrotheeeer/course-catalog/internal/http/handlers/course/open"
	"github.com/magabrotheeeer/course-catalog/internal/http/handlers/health"
	"github.com/magabrotheeeer/course-catalog/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-catalog/internal/services/access"
	"github.com/magabrotheeeer/course-catalog/internal/services/admin"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, store *catalog.Store, gate *access.Gate, ops *admin.Ops, tokens middlewarectx.TokenParser, openLimiter *rate.Limiter) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Без токена зритель анонимный
		r.Use(middlewarectx.Authenticate(tokens, logger))

		r.Get("/courses", list.New(logger, store).ServeHTTP)
		r.With(middlewarectx.RateLimitMiddleware(logger, openLimiter)).
			Post("/courses/{id}/open", open.New(logger, store, gate).ServeHTTP)

		// Администрирование каталога
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireAdmin(logger))
			r.Post("/courses", create.New(logger, ops).ServeHTTP)
			r.Get("/courses/{id}/edit", edit.New(logger, store, ops).ServeHTTP)
			r.Post("/courses/{id}/deletion", deletion.NewSelect(logger, store, ops).ServeHTTP)
			r.Delete("/courses/deletion", deletion.NewConfirm(logger, ops).ServeHTTP)
			r.Post("/courses/deletion/cancel", deletion.NewCancel(ops).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, store).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
