package services

import "errors"

// Ошибки сервисного слоя. Наружу уходят только они: текст ошибок хранилища
// и внешних вызовов остается в логах.
var (
	ErrMissingInput      = errors.New("[service]: url is required")
	ErrTooLong           = errors.New("[service]: url too long")
	ErrMalformed         = errors.New("[service]: malformed url")
	ErrDisallowedScheme  = errors.New("[service]: url scheme is not allowed")
	ErrBlocked           = errors.New("[service]: url is blocked")
	ErrRecordNotFound    = errors.New("[service]: record not found")
	ErrInvalidCodeFormat = errors.New("[service]: invalid code format")
	ErrStoreUnavailable  = errors.New("[service]: store unavailable")
	ErrUnknown           = errors.New("[service]: unknown error")
)
