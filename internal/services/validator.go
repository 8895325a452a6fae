package services

import (
	"net/url"
	"strings"
)

// MaxURLLength максимальная длина входного URL.
const MaxURLLength = 2048

// allowedSchemes схемы, разрешенные к сокращению. Все прочие (javascript:,
// data:, file:, vbscript:, about:, chrome: и т.д.) отклоняются.
var allowedSchemes = map[string]struct{}{
	"http":  {},
	"https": {},
}

// URLValidator синтаксическая проверка кандидата на сокращение.
// Без состояния и побочных эффектов.
type URLValidator struct{}

func NewURLValidator() *URLValidator {
	return &URLValidator{}
}

// Validate проверяет кандидата и возвращает разобранный URL.
// Проверка выполняется как при создании, так и повторно перед редиректом:
// запись могла быть сохранена при более мягких правилах.
func (v *URLValidator) Validate(rawURL string) (*url.URL, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, ErrMissingInput
	}
	if len(rawURL) > MaxURLLength {
		return nil, ErrTooLong
	}

	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return nil, ErrMalformed
	}
	if _, ok := allowedSchemes[parsedURL.Scheme]; !ok {
		return nil, ErrDisallowedScheme
	}
	if parsedURL.Host == "" {
		return nil, ErrMalformed
	}
	return parsedURL, nil
}
