// Package group реализует HTTP-обработчики учебных групп курса.
package group

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

// Service описывает операции над группами.
type Service interface {
	CreateGroup(ctx context.Context, courseID int64, in models.DummyGroup) (*models.Group, error)
	GetGroup(ctx context.Context, courseID, id int64) (*models.GroupLoad, error)
	ListGroups(ctx context.Context, courseID int64) ([]*models.GroupLoad, error)
	DeleteGroup(ctx context.Context, courseID, id int64) error
}

// Handler обрабатывает запросы к группам.
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
// @Summary Группы курса с числом участников
// @Tags Groups
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "ID курса"
// @Success 200 {object} response.Response{data=[]models.GroupLoad}
// @Failure 404 {object} response.ErrorResponse
// @Router /courses/{course_id}/groups [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.group.List")

	courseID, err := request.IDParam(r, "course_id")
	if err != nil {
		h.badID(w, r, log, err, "Некорректный ID курса.")
		return
	}

	groups, err := h.service.ListGroups(r.Context(), courseID)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(groups))
}

// Create godoc
// @Summary Создание группы
// @Tags Groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "ID курса"
// @Param request body models.DummyGroup true "Группа"
// @Success 201 {object} response.Response{data=models.Group}
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /courses/{course_id}/groups [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.group.Create")

	courseID, err := request.IDParam(r, "course_id")
	if err != nil {
		h.badID(w, r, log, err, "Некорректный ID курса.")
		return
	}

	var req models.DummyGroup
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err = h.validate.Struct(req); err != nil {
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

	group, err := h.service.CreateGroup(r.Context(), courseID, req)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}

	log.Info("group created", slog.Int64("course_id", courseID), slog.Int64("id", group.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OK("Группа создана.", group))
}

// Get godoc
// @Summary Получение группы
// @Tags Groups
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "ID курса"
// @Param id path int true "ID группы"
// @Success 200 {object} response.Response{data=models.GroupLoad}
// @Failure 404 {object} response.ErrorResponse
// @Router /courses/{course_id}/groups/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.group.Get")

	courseID, id, ok := h.ids(w, r, log)
	if !ok {
		return
	}

	group, err := h.service.GetGroup(r.Context(), courseID, id)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(group))
}

// Delete godoc
// @Summary Удаление группы
// @Description Участники группы остаются без группы.
// @Tags Groups
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "ID курса"
// @Param id path int true "ID группы"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /courses/{course_id}/groups/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.group.Delete")

	courseID, id, ok := h.ids(w, r, log)
	if !ok {
		return
	}

	if err := h.service.DeleteGroup(r.Context(), courseID, id); err != nil {
		h.fail(w, r, log, err)
		return
	}

	log.Info("group deleted", slog.Int64("course_id", courseID), slog.Int64("id", id))
	render.JSON(w, r, response.OK("Группа удалена.", nil))
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

func (h *Handler) ids(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int64, int64, bool) {
	courseID, err := request.IDParam(r, "course_id")
	if err != nil {
		h.badID(w, r, log, err, "Некорректный ID курса.")
		return 0, 0, false
	}
	id, err := request.IDParam(r, "id")
	if err != nil {
		h.badID(w, r, log, err, "Некорректный ID группы.")
		return 0, 0, false
	}
	return courseID, id, true
}

func (h *Handler) badID(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, detail string) {
	log.Warn("failed to decode id from url", sl.Err(err))
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, response.Error(detail))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, resp := response.FromError(err)
	if status == http.StatusInternalServerError {
		log.Error("group operation failed", sl.Err(err))
	}
	render.Status(r, status)
	render.JSON(w, r, resp)
}
