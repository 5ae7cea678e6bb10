// Package create реализует HTTP-обработчик создания курса.
//
// Автором курса может быть только преподаватель; если author_uid не
// передан, автором становится текущий пользователь.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/course-marketplace/internal/access"
	"github.com/magabrotheeeer/course-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-marketplace/internal/http/response"
	"github.com/magabrotheeeer/course-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

// Service описывает создание курса.
type Service interface {
	CreateCourse(ctx context.Context, p *access.Principal, in models.DummyCourse) (*models.Course, error)
}

// Handler обрабатывает запросы на создание курса.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создание курса
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DummyCourse true "Курс"
// @Success 201 {object} response.Response{data=models.Course}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse "Автор не преподаватель"
// @Failure 422 {object} response.ErrorResponse
// @Router /courses [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyCourse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			log.Warn("validation failed", sl.Err(err))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request"))
		return
	}

	course, err := h.service.CreateCourse(r.Context(), middlewarectx.PrincipalFrom(r.Context()), req)
	if err != nil {
		status, resp := response.FromError(err)
		log.Error("failed to create course", sl.Err(err))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("course created", slog.Int64("id", course.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OK("Курс создан.", course))
}
