package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Limiter решает, пропускать ли очередной запрос клиента.
type Limiter interface {
	Allow(clientID string) bool
}

// RateLimitMiddleware отсекает клиентов, превысивших лимит запросов.
// Гейт стоит до бизнес-логики и действует на все маршруты.
func RateLimitMiddleware(limiter Limiter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if limiter == nil {
			ctx.Next()
			return
		}
		if !limiter.Allow(ClientID(ctx.Request)) {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again later.",
			})
			return
		}
		ctx.Next()
	}
}
