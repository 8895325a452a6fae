package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey ключ request id в контексте gin.
const RequestIDKey = "requestID"

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware проставляет запросу идентификатор, если клиент не
// прислал свой. Идентификатор уходит в лог запроса и в ответный заголовок.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Set(RequestIDKey, requestID)
		ctx.Header(requestIDHeader, requestID)
		ctx.Next()
	}
}
