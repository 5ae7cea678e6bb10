// Package pay реализует HTTP-обработчик покупки курса за баллы.
//
// Handler берет ID курса из пути, вызывает транзакцию покупки и
// сопоставляет результат с HTTP-статусом: 200 при успехе, 400 при нехватке
// баллов, 404 если нет курса или баланса, 409 при повторной покупке,
// 503 если не создано ни одной группы.
package pay

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

// SuccessDetail — сообщение об успешной покупке.
const SuccessDetail = "Оплата прошла успешно. Доступ к курсу открыт, пользователь добавлен в группу."

// Service описывает транзакцию покупки курса.
type Service interface {
	Purchase(ctx context.Context, p *access.Principal, courseID int64) (*models.Purchase, error)
}

// Handler обрабатывает запросы на покупку курса.
type Handler struct {
	log     *slog.Logger
	service Service
	param   string
}

// New создает Handler. param — имя параметра пути с ID курса.
func New(log *slog.Logger, service Service, param string) *Handler {
	return &Handler{
		log:     log,
		service: service,
		param:   param,
	}
}

// ServeHTTP godoc
// @Summary Покупка курса
// @Description Списывает цену курса с баланса, открывает доступ и распределяет пользователя в группу.
// @Tags Enrollment
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID курса"
// @Success 200 {object} response.Response{data=models.Purchase}
// @Failure 400 {object} response.ErrorResponse "Недостаточно бонусов"
// @Failure 404 {object} response.ErrorResponse "Курс или баланс не найден"
// @Failure 409 {object} response.ErrorResponse "Курс уже куплен"
// @Failure 503 {object} response.ErrorResponse "Нет групп"
// @Router /courses/{id}/pay [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.enrollment.pay"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	courseID, err := request.IDParam(r, h.param)
	if err != nil {
		log.Warn("failed to decode course id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Некорректный ID курса."))
		return
	}

	res, err := h.service.Purchase(r.Context(), middlewarectx.PrincipalFrom(r.Context()), courseID)
	if err != nil {
		status, resp := response.FromError(err)
		if status == http.StatusInternalServerError {
			log.Error("purchase failed", sl.Err(err))
		} else {
			log.Info("purchase rejected", slog.Int64("course_id", courseID), sl.Err(err))
		}
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("purchase completed", slog.Int64("course_id", courseID), slog.Int64("group_id", res.GroupID))
	render.JSON(w, r, response.OK(SuccessDetail, res))
}
