// Package balance реализует HTTP-обработчики управления балансами.
package balance

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

// Service описывает чтение и установку балансов.
type Service interface {
	ListBalances(ctx context.Context, limit, offset int) ([]*models.Balance, error)
	GetBalance(ctx context.Context, userUID string) (*models.Balance, error)
	SetBalance(ctx context.Context, userUID string, amount models.Points) (*models.Balance, error)
}

// Handler обрабатывает запросы к балансам.
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
// @Summary Список балансов
// @Tags Balances
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.Balance}
// @Router /balances [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.balance.List")

	limit, offset := request.Pagination(r)
	balances, err := h.service.ListBalances(r.Context(), limit, offset)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(balances))
}

// Get godoc
// @Summary Баланс пользователя
// @Tags Balances
// @Produce json
// @Security BearerAuth
// @Param uid path string true "UID пользователя"
// @Success 200 {object} response.Response{data=models.Balance}
// @Failure 404 {object} response.ErrorResponse
// @Router /balances/{uid} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.balance.Get")

	uid, ok := h.uid(w, r, log)
	if !ok {
		return
	}

	balance, err := h.service.GetBalance(r.Context(), uid)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(balance))
}

// Set godoc
// @Summary Установка баланса
// @Description Создает баланс, если его еще нет. Отрицательная сумма отклоняется.
// @Tags Balances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uid path string true "UID пользователя"
// @Param request body models.DummyBalance true "Сумма"
// @Success 200 {object} response.Response{data=models.Balance}
// @Failure 400 {object} response.ErrorResponse "Сумма не передана, отрицательна или вне диапазона"
// @Failure 404 {object} response.ErrorResponse
// @Router /balances/{uid} [put]
func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.balance.Set")

	uid, ok := h.uid(w, r, log)
	if !ok {
		return
	}

	var req models.DummyBalance
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Некорректная сумма."))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			log.Warn("validation failed", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request"))
		return
	}

	balance, err := h.service.SetBalance(r.Context(), uid, *req.Amount)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}

	log.Info("balance updated", slog.String("uid", uid), slog.String("amount", balance.Amount.String()))
	render.JSON(w, r, response.OK("Баланс обновлен.", balance))
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
		log.Error("balance operation failed", sl.Err(err))
	}
	render.Status(r, status)
	render.JSON(w, r, resp)
}
