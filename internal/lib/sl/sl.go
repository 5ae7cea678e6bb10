// Package sl содержит вспомогательные функции для работы с логгером slog.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// NewDiscard возвращает логгер, который ничего не пишет. Нужен в тестах.
func NewDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
