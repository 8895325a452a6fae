package middlewares

import (
	"net/http"
	"strings"
)

// UnknownClientID общий бакет для клиентов без опознаваемого адреса.
const UnknownClientID = "unknown"

// ClientID идентификатор клиента для лимитера и метаданных: заголовок
// доверенного прокси, затем первый адрес из X-Forwarded-For, иначе общий
// бакет unknown.
func ClientID(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	return UnknownClientID
}
