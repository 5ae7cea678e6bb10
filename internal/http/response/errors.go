package response

import (
	"errors"
	"net/http"

	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

// FromError сопоставляет доменную ошибку с HTTP-статусом и ответом.
// Неизвестные ошибки становятся 500 без подробностей.
func FromError(err error) (int, Response) {
	switch {
	case errors.Is(err, models.ErrCourseNotFound):
		return http.StatusNotFound, Error("Курс не найден.")
	case errors.Is(err, models.ErrBalanceNotFound):
		return http.StatusNotFound, Error("Баланс не найден.")
	case errors.Is(err, models.ErrUserNotFound):
		return http.StatusNotFound, Error("Пользователь не найден.")
	case errors.Is(err, models.ErrLessonNotFound):
		return http.StatusNotFound, Error("Урок не найден.")
	case errors.Is(err, models.ErrGroupNotFound):
		return http.StatusNotFound, Error("Группа не найдена.")
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, Error("Не найдено.")
	case errors.Is(err, models.ErrInsufficientFunds):
		return http.StatusBadRequest, Error("Недостаточно бонусов.")
	case errors.Is(err, models.ErrInvalidBalance), errors.Is(err, models.ErrInvalidPoints):
		return http.StatusBadRequest, Error("Сумма не может быть отрицательной.")
	case errors.Is(err, models.ErrPermissionDenied):
		return http.StatusForbidden, Error("Недостаточно прав.")
	case errors.Is(err, models.ErrAlreadySubscribed):
		return http.StatusConflict, Error("Курс уже куплен.")
	case errors.Is(err, models.ErrUserExists):
		return http.StatusConflict, Error("Пользователь с таким email или username уже существует.")
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized, Error("Неверное имя пользователя или пароль.")
	case errors.Is(err, models.ErrNoGroupsAvailable):
		return http.StatusServiceUnavailable, Error("Нет доступных групп для распределения.")
	default:
		return http.StatusInternalServerError, Error("internal server error")
	}
}
