// Package request содержит разбор параметров HTTP-запроса, общий для обработчиков.
package request

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// IDParam читает положительный целочисленный параметр пути name.
func IDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// Pagination читает limit и offset из query. Некорректные значения заменяются значениями по умолчанию.
func Pagination(r *http.Request) (limit, offset int) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset, err = strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// BoolQuery возвращает true, если параметр name равен true или 1.
func BoolQuery(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}
