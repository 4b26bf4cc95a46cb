// Package open реализует HTTP-обработчик выбора курса в каталоге.
//
// Handler находит курс по ID из URL, передаёт его вместе со зрителем
// в проверку доступа и возвращает место перехода: страницу курса,
// страницу тарифов или страницу оплаты.
package open

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-catalog/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-catalog/internal/http/response"
	"github.com/magabrotheeeer/course-catalog/internal/models"
)

// Catalog описывает поиск курса в текущем снимке.
type Catalog interface {
	Get(id string) (models.Course, bool)
}

// Navigator принимает навигационное решение по курсу.
type Navigator interface {
	ResolveNavigation(ctx context.Context, viewer models.Viewer, course models.Course) models.Destination
}

// Handler обрабатывает запросы на открытие курса.
type Handler struct {
	log       *slog.Logger
	catalog   Catalog
	navigator Navigator
}

// New создает новый Handler.
func New(log *slog.Logger, catalog Catalog, navigator Navigator) *Handler {
	return &Handler{
		log:       log,
		catalog:   catalog,
		navigator: navigator,
	}
}

// ServeHTTP godoc
// @Summary Открыть курс
// @Description Решает, куда вести зрителя: на страницу курса, тарифов или оплаты.
// @Tags Courses
// @Produce  json
// @Param id path string true "ID курса"
// @Success 200 {object} response.Response{data=models.Destination}
// @Failure 401 {object} response.ErrorResponse "Недействительный токен"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Router /courses/{id}/open [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.open"
	id := chi.URLParam(r, "id")
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("course_id", id),
	)

	course, ok := h.catalog.Get(id)
	if !ok {
		log.Warn("course not found")
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("course not found"))
		return
	}

	viewer := middlewarectx.ViewerFromContext(r.Context())
	dest := h.navigator.ResolveNavigation(r.Context(), viewer, course)
	if dest.IsNone() {
		log.Info("request canceled before navigation decision")
		return
	}

	log.Info("navigation resolved", slog.String("destination", string(dest.Kind)))
	render.JSON(w, r, response.StatusOKWithData(dest))
}
