// Package list реализует HTTP-обработчик страницы каталога курсов.
//
// Handler читает поисковый запрос и номер страницы из query-параметров,
// берёт страницу из текущего снимка каталога и возвращает карточки курсов.
// Пока первый снимок не получен, отдаётся пустая страница с состоянием loading.
package list

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-catalog/internal/catalog"
	"github.com/magabrotheeeer/course-catalog/internal/http/response"
	"github.com/magabrotheeeer/course-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/course-catalog/internal/models"
)

// Service описывает чтение каталога.
type Service interface {
	Status() (catalog.Status, error)
	Query(term string, page int) catalog.View
}

// Card карточка курса в списке.
type Card struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Instructor       string            `json:"instructor"`
	Category         string            `json:"category"`
	Duration         string            `json:"duration"`
	Image            string            `json:"image"`
	Level            models.Level      `json:"level"`
	Rating           float64           `json:"rating"`
	EnrolledStudents int               `json:"enrolledStudents"`
	VideoCount       int               `json:"videoCount"`
	Price            float64           `json:"price"`
	AccessType       models.AccessType `json:"accessType"`
	CreatedAt        string            `json:"createdAt"`
}

// Page ответ обработчика.
type Page struct {
	State      string `json:"state"`
	Courses    []Card `json:"courses"`
	SearchTerm string `json:"searchTerm"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
	Total      int    `json:"total"`
}

// Handler обрабатывает запросы страницы каталога.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Страница каталога курсов
// @Description Возвращает страницу курсов (по 15), отфильтрованных по вхождению search в название.
// @Tags Courses
// @Produce  json
// @Param search query string false "Поисковый запрос"
// @Param page query int false "Номер страницы, с 1"
// @Success 200 {object} response.Response{data=Page}
// @Failure 400 {object} response.ErrorResponse "Некорректный номер страницы"
// @Failure 503 {object} response.ErrorResponse "Каталог недоступен"
// @Router /courses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			log.Error("failed to parse page", sl.Err(err), slog.String("page", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid page"))
			return
		}
		page = p
	}
	term := r.URL.Query().Get("search")

	status, err := h.service.Status()
	if status == catalog.StatusFailed {
		log.Error("catalog unavailable", sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("failed to load courses"))
		return
	}

	view := h.service.Query(term, page)
	cards := make([]Card, 0, len(view.Courses))
	for _, c := range view.Courses {
		cards = append(cards, toCard(c))
	}

	log.Debug("catalog page served", slog.Int("page", view.Page), slog.Int("count", len(cards)))
	render.JSON(w, r, response.StatusOKWithData(Page{
		State:      status.String(),
		Courses:    cards,
		SearchTerm: view.SearchTerm,
		Page:       view.Page,
		TotalPages: view.TotalPages,
		Total:      view.Total,
	}))
}

func toCard(c models.Course) Card {
	return Card{
		ID:               c.ID,
		Title:            c.Title,
		Description:      c.Description,
		Instructor:       c.Instructor,
		Category:         c.Category,
		Duration:         c.Duration,
		Image:            c.DisplayImage(),
		Level:            c.Level,
		Rating:           c.Rating,
		EnrolledStudents: c.EnrolledStudents,
		VideoCount:       c.VideoCount,
		Price:            c.Price,
		AccessType:       c.AccessType,
		CreatedAt:        c.CreatedAt,
	}
}
