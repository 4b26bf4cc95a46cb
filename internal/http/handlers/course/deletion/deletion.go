// Package deletion реализует HTTP-обработчики удаления курса в два шага:
// выбор курса, подтверждение и отмена выбора.
package deletion

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-catalog/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-catalog/internal/http/response"
	"github.com/magabrotheeeer/course-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/course-catalog/internal/models"
)

// Catalog описывает поиск курса в текущем снимке.
type Catalog interface {
	Get(id string) (models.Course, bool)
}

// Service описывает двухшаговое удаление.
type Service interface {
	SelectForDeletion(viewer models.Viewer, id string) bool
	CancelDeletion(viewer models.Viewer)
	ConfirmDeletion(ctx context.Context, viewer models.Viewer) (string, bool, error)
}

// SelectHandler запоминает курс для удаления.
type SelectHandler struct {
	log     *slog.Logger
	catalog Catalog
	service Service
}

// NewSelect создает новый SelectHandler.
func NewSelect(log *slog.Logger, catalog Catalog, service Service) *SelectHandler {
	return &SelectHandler{log: log, catalog: catalog, service: service}
}

// ServeHTTP godoc
// @Summary Выбрать курс для удаления
// @Tags Admin
// @Produce  json
// @Param id path string true "ID курса"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse "Нет прав администратора"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Router /courses/{id}/deletion [post]
func (h *SelectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.deletion.select"
	id := chi.URLParam(r, "id")
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("course_id", id),
	)

	course, ok := h.catalog.Get(id)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("course not found"))
		return
	}
	if !h.service.SelectForDeletion(middlewarectx.ViewerFromContext(r.Context()), id) {
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("admin role required"))
		return
	}

	log.Info("course selected for deletion")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"pending": id,
		"title":   course.Title,
	}))
}

// ConfirmHandler удаляет выбранный курс.
type ConfirmHandler struct {
	log     *slog.Logger
	service Service
}

// NewConfirm создает новый ConfirmHandler.
func NewConfirm(log *slog.Logger, service Service) *ConfirmHandler {
	return &ConfirmHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Подтвердить удаление
// @Description Удаляет выбранный курс. Удаление отсутствующего курса ничего не меняет.
// @Tags Admin
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 409 {object} response.ErrorResponse "Курс не выбран"
// @Failure 500 {object} response.ErrorResponse "Ошибка удаления"
// @Router /courses/deletion [delete]
func (h *ConfirmHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.deletion.confirm"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, deleted, err := h.service.ConfirmDeletion(r.Context(), middlewarectx.ViewerFromContext(r.Context()))
	if err != nil {
		log.Error("failed to delete course", sl.Err(err), slog.String("course_id", id))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete course"))
		return
	}
	if id == "" {
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("no course selected for deletion"))
		return
	}

	log.Info("deletion confirmed", slog.String("course_id", id), slog.Bool("deleted", deleted))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":      id,
		"deleted": deleted,
	}))
}

// CancelHandler сбрасывает выбор.
type CancelHandler struct {
	service Service
}

// NewCancel создает новый CancelHandler.
func NewCancel(service Service) *CancelHandler {
	return &CancelHandler{service: service}
}

// ServeHTTP godoc
// @Summary Отменить удаление
// @Tags Admin
// @Success 204
// @Router /courses/deletion/cancel [post]
func (h *CancelHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.service.CancelDeletion(middlewarectx.ViewerFromContext(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}
