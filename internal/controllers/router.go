package controllers

import (
	"net/http"

	"github.com/fsdevblog/shortlink/internal/config"
	"github.com/fsdevblog/shortlink/internal/controllers/middlewares"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RouterParams struct {
	LinkService URLShortener
	Limiter     middlewares.Limiter
	AppConf     config.Config
	Logger      *logrus.Logger
}

func SetupRouter(params RouterParams) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestIDMiddleware())
	r.Use(middlewares.LoggerMiddleware(params.Logger))
	r.Use(corsMiddleware())
	r.Use(middlewares.RateLimitMiddleware(params.Limiter))
	r.Use(middlewares.GzipMiddleware())

	linkController := NewLinkController(params.LinkService, params.AppConf.BaseURL)

	r.GET("/", linkController.Home)
	r.GET("/:code", linkController.Redirect)

	api := r.Group("/api")
	api.POST("/shorten", linkController.CreateShortLink)
	api.GET("/urls", linkController.ListLinks)
	return r
}

// corsMiddleware отвечает на preflight и отражает конкретный Origin запроса (не wildcard).
func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: func(_ string) bool { return true },
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Content-Type"},
	})
}
