// Package list реализует HTTP-обработчик списка курсов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-marketplace/internal/http/request"
	"github.com/magabrotheeeer/course-marketplace/internal/http/response"
	"github.com/magabrotheeeer/course-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

// Service описывает получение списка курсов.
type Service interface {
	ListCourses(ctx context.Context, filter models.CourseFilter) ([]*models.Course, error)
}

// Handler обрабатывает запросы на список курсов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список курсов
// @Tags Courses
// @Produce json
// @Param is_available query bool false "Только доступные для покупки"
// @Param limit query int false "Лимит"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response{data=[]models.Course}
// @Router /courses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, offset := request.Pagination(r)
	filter := models.CourseFilter{
		OnlyAvailable: request.BoolQuery(r, "is_available"),
		Limit:         limit,
		Offset:        offset,
	}

	courses, err := h.service.ListCourses(r.Context(), filter)
	if err != nil {
		status, resp := response.FromError(err)
		log.Error("failed to list courses", sl.Err(err))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(courses))
}
