// Package user реализует HTTP-обработчики администрирования пользователей.
package user

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/course-marketplace/internal/http/request"
	"github.com/magabrotheeeer/course-marketplace/internal/http/response"
	"github.com/magabrotheeeer/course-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

// Service описывает чтение и изменение пользователей.
type Service interface {
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	UpdateUser(ctx context.Context, userUID string, upd models.DummyUserUpdate) (*models.User, error)
}

// Handler обрабатывает запросы к пользователям.
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
// @Summary Список пользователей
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Лимит"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response{data=[]models.User}
// @Router /users [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.user.List")

	limit, offset := request.Pagination(r)
	users, err := h.service.ListUsers(r.Context(), limit, offset)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(users))
}

// Get godoc
// @Summary Получение пользователя
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param uid path string true "UID пользователя"
// @Success 200 {object} response.Response{data=models.User}
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{uid} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.user.Get")

	uid, ok := h.uid(w, r, log)
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), uid)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(user))
}

// Update godoc
// @Summary Смена роли пользователя
// @Description Новые права вступают в силу при следующем входе пользователя.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uid path string true "UID пользователя"
// @Param request body models.DummyUserUpdate true "Роль и признак преподавателя"
// @Success 200 {object} response.Response{data=models.User}
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /users/{uid} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.user.Update")

	uid, ok := h.uid(w, r, log)
	if !ok {
		return
	}

	var req models.DummyUserUpdate
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

	user, err := h.service.UpdateUser(r.Context(), uid, req)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}

	render.JSON(w, r, response.OK("Пользователь обновлен.", user))
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

func (h *Handler) uid(w http.ResponseWriter, r *http.Request, log *slog.Logger) (string, bool) {
	uid := chi.URLParam(r, "uid")
	if err := h.validate.Var(uid, "required,uuid"); err != nil {
		log.Warn("invalid uid in url", slog.String("uid", uid), sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Некорректный UID пользователя."))
		return "", false
	}
	return uid, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, resp := response.FromError(err)
	if status == http.StatusInternalServerError {
		log.Error("user operation failed", sl.Err(err))
	}
	render.Status(r, status)
	render.JSON(w, r, resp)
}
