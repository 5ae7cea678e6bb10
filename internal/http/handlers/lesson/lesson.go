// Package lesson реализует HTTP-обработчики уроков курса.
// Все маршруты вложены в /courses/{course_id}/lessons.
package lesson

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/course-marketplace/internal/http/request"
	"github.com/magabrotheeeer/course-marketplace/internal/http/response"
	"github.com/magabrotheeeer/course-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

// Service описывает операции над уроками.
type Service interface {
	CreateLesson(ctx context.Context, courseID int64, in models.DummyLesson) (*models.Lesson, error)
	GetLesson(ctx context.Context, courseID, id int64) (*models.Lesson, error)
	ListLessons(ctx context.Context, courseID int64) ([]*models.Lesson, error)
	UpdateLesson(ctx context.Context, courseID, id int64, in models.DummyLesson) (*models.Lesson, error)
	DeleteLesson(ctx context.Context, courseID, id int64) error
}

// Handler обрабатывает запросы к урокам.
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

// List godoc
// @Summary Список уроков курса
// @Tags Lessons
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "ID курса"
// @Success 200 {object} response.Response{data=[]models.Lesson}
// @Failure 404 {object} response.ErrorResponse
// @Router /courses/{course_id}/lessons [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.lesson.List")

	courseID, ok := h.courseID(w, r, log)
	if !ok {
		return
	}

	lessons, err := h.service.ListLessons(r.Context(), courseID)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(lessons))
}

// Create godoc
// @Summary Создание урока
// @Tags Lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "ID курса"
// @Param request body models.DummyLesson true "Урок"
// @Success 201 {object} response.Response{data=models.Lesson}
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /courses/{course_id}/lessons [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.lesson.Create")

	courseID, ok := h.courseID(w, r, log)
	if !ok {
		return
	}
	req, ok := h.decode(w, r, log)
	if !ok {
		return
	}

	lesson, err := h.service.CreateLesson(r.Context(), courseID, req)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}

	log.Info("lesson created", slog.Int64("course_id", courseID), slog.Int64("id", lesson.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OK("Урок создан.", lesson))
}

// Get godoc
// @Summary Получение урока
// @Tags Lessons
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "ID курса"
// @Param id path int true "ID урока"
// @Success 200 {object} response.Response{data=models.Lesson}
// @Failure 404 {object} response.ErrorResponse
// @Router /courses/{course_id}/lessons/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.lesson.Get")

	courseID, id, ok := h.ids(w, r, log)
	if !ok {
		return
	}

	lesson, err := h.service.GetLesson(r.Context(), courseID, id)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(lesson))
}

// Update godoc
// @Summary Изменение урока
// @Tags Lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "ID курса"
// @Param id path int true "ID урока"
// @Param request body models.DummyLesson true "Урок"
// @Success 200 {object} response.Response{data=models.Lesson}
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /courses/{course_id}/lessons/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.lesson.Update")

	courseID, id, ok := h.ids(w, r, log)
	if !ok {
		return
	}
	req, ok := h.decode(w, r, log)
	if !ok {
		return
	}

	lesson, err := h.service.UpdateLesson(r.Context(), courseID, id, req)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}

	log.Info("lesson updated", slog.Int64("course_id", courseID), slog.Int64("id", id))
	render.JSON(w, r, response.OK("Урок обновлен.", lesson))
}

// Delete godoc
// @Summary Удаление урока
// @Tags Lessons
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "ID курса"
// @Param id path int true "ID урока"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /courses/{course_id}/lessons/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.lesson.Delete")

	courseID, id, ok := h.ids(w, r, log)
	if !ok {
		return
	}

	if err := h.service.DeleteLesson(r.Context(), courseID, id); err != nil {
		h.fail(w, r, log, err)
		return
	}

	log.Info("lesson deleted", slog.Int64("course_id", courseID), slog.Int64("id", id))
	render.JSON(w, r, response.OK("Урок удален.", nil))
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

func (h *Handler) courseID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int64, bool) {
	courseID, err := request.IDParam(r, "course_id")
	if err != nil {
		log.Warn("failed to decode course_id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Некорректный ID курса."))
		return 0, false
	}
	return courseID, true
}

func (h *Handler) ids(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int64, int64, bool) {
	courseID, ok := h.courseID(w, r, log)
	if !ok {
		return 0, 0, false
	}
	id, err := request.IDParam(r, "id")
	if err != nil {
		log.Warn("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Некорректный ID урока."))
		return 0, 0, false
	}
	return courseID, id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, log *slog.Logger) (models.DummyLesson, bool) {
	var req models.DummyLesson
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			log.Warn("validation failed", sl.Err(err))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(verrs))
			return req, false
		}
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request"))
		return req, false
	}
	return req, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, resp := response.FromError(err)
	if status == http.StatusInternalServerError {
		log.Error("lesson operation failed", sl.Err(err))
	} else {
		log.Warn("lesson operation rejected", sl.Err(err))
	}
	render.Status(r, status)
	render.JSON(w, r, resp)
}
