// Package edit реализует HTTP-обработчик перехода в редактор курса.
package edit

import (
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

// Service возвращает переход в редактор.
type Service interface {
	Edit(viewer models.Viewer, id string) models.Destination
}

// Handler обрабатывает запросы перехода в редактор.
type Handler struct {
	log     *slog.Logger
	catalog Catalog
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, catalog Catalog, service Service) *Handler {
	return &Handler{
		log:     log,
		catalog: catalog,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Редактировать курс
// @Description Возвращает переход в редактор курса. Каталог не меняется.
// @Tags Admin
// @Produce  json
// @Param id path string true "ID курса"
// @Success 200 {object} response.Response{data=models.Destination}
// @Failure 403 {object} response.ErrorResponse "Нет прав администратора"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Router /courses/{id}/edit [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.edit"
	id := chi.URLParam(r, "id")
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("course_id", id),
	)

	if _, ok := h.catalog.Get(id); !ok {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("course not found"))
		return
	}

	dest := h.service.Edit(middlewarectx.ViewerFromContext(r.Context()), id)
	if dest.IsNone() {
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("admin role required"))
		return
	}

	log.Debug("editor destination resolved")
	render.JSON(w, r, response.StatusOKWithData(dest))
}
