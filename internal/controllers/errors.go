package controllers

import (
	"errors"
	"net/http"

	"github.com/fsdevblog/shortlink/internal/services"
)

// Ошибки.
var (
	ErrRecordNotFound = errors.New("record not found") // Запись не найдена
	ErrInternal       = errors.New("internal error")   // Прочая ошибка
)

// shortenError переводит ошибку сервисного слоя в статус и сообщение для
// клиента. Тексты нейтральные, внутренних деталей в них нет.
func shortenError(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrMissingInput):
		return http.StatusBadRequest, "URL is required"
	case errors.Is(err, services.ErrTooLong):
		return http.StatusBadRequest, "URL too long (max 2048 characters)"
	case errors.Is(err, services.ErrMalformed):
		return http.StatusBadRequest, "Invalid URL format. Only HTTP and HTTPS are allowed."
	case errors.Is(err, services.ErrDisallowedScheme):
		return http.StatusBadRequest, "This URL scheme is not allowed"
	case errors.Is(err, services.ErrBlocked):
		return http.StatusBadRequest, "This URL has been flagged as potentially harmful"
	default:
		return http.StatusInternalServerError, ErrInternal.Error()
	}
}
