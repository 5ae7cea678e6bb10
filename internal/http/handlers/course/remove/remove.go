// Package remove реализует HTTP-обработчик удаления курса.
// Вместе с курсом удаляются его уроки, группы и подписки на него.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-marketplace/internal/http/request"
	"github.com/magabrotheeeer/course-marketplace/internal/http/response"
	"github.com/magabrotheeeer/course-marketplace/internal/lib/sl"
)

// Service описывает удаление курса.
type Service interface {
	DeleteCourse(ctx context.Context, id int64) error
}

// Handler обрабатывает запросы на удаление курса.
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
// @Summary Удаление курса
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID курса"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /courses/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := request.IDParam(r, "id")
	if err != nil {
		log.Warn("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Некорректный ID курса."))
		return
	}

	if err = h.service.DeleteCourse(r.Context(), id); err != nil {
		status, resp := response.FromError(err)
		log.Error("failed to delete course", slog.Int64("id", id), sl.Err(err))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("course deleted", slog.Int64("id", id))
	render.JSON(w, r, response.OK("Курс удален.", nil))
}
