// Package available реализует HTTP-обработчик списка курсов,
// которые текущий пользователь еще не купил.
package available

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-marketplace/internal/access"
	"github.com/magabrotheeeer/course-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-marketplace/internal/http/request"
	"github.com/magabrotheeeer/course-marketplace/internal/http/response"
	"github.com/magabrotheeeer/course-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

// Service описывает выборку доступных пользователю курсов.
type Service interface {
	AvailableCourses(ctx context.Context, p *access.Principal, filter models.CourseFilter) ([]*models.Course, error)
}

// Handler обрабатывает запросы на список доступных курсов.
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
// @Summary Курсы, доступные для покупки
// @Description Курсы, на которые у пользователя еще нет подписки.
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param is_available query bool false "Только открытые для продажи"
// @Success 200 {object} response.Response{data=[]models.Course}
// @Router /courses/available [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.available"

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

	courses, err := h.service.AvailableCourses(r.Context(), middlewarectx.PrincipalFrom(r.Context()), filter)
	if err != nil {
		status, resp := response.FromError(err)
		log.Error("failed to list available courses", sl.Err(err))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(courses))
}
