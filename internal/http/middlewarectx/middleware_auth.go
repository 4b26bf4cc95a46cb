// Package middlewarectx содержит HTTP middleware для определения зрителя
// по JWT токену, проверки роли администратора и ограничения частоты запросов.
//
// Authenticate разбирает необязательный заголовок Authorization и кладёт
// в контекст models.Viewer. Без заголовка зритель анонимный; неверный
// токен даёт HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-catalog/internal/http/response"
	"github.com/magabrotheeeer/course-catalog/internal/lib/jwt"
	"github.com/magabrotheeeer/course-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/course-catalog/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// ViewerKey ключ для models.Viewer в контексте.
const ViewerKey Key = "viewer"

// TokenParser описывает разбор JWT токена.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.CustomClaims, error)
}

// WithViewer возвращает контекст с зрителем.
func WithViewer(ctx context.Context, viewer models.Viewer) context.Context {
	return context.WithValue(ctx, ViewerKey, viewer)
}

// ViewerFromContext возвращает зрителя из контекста; без него зритель анонимный.
func ViewerFromContext(ctx context.Context) models.Viewer {
	viewer, _ := ctx.Value(ViewerKey).(models.Viewer)
	return viewer
}

// Authenticate возвращает HTTP middleware, который определяет зрителя по токену.
func Authenticate(parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Authenticate"
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), models.Viewer{})))
				return
			}

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := parser.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			viewer := models.Viewer{UserID: claims.UserID(), Role: claims.Role}
			next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), viewer)))
		})
	}
}

// RequireAdmin пропускает только администратора: анонимному зрителю 401, остальным 403.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireAdmin"
			viewer := ViewerFromContext(r.Context())

			if viewer.UserID == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}
			if !viewer.IsAdmin() {
				log.Warn("admin access denied",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("user_id", viewer.UserID),
				)
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("admin role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
