package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/fsdevblog/shortlink/internal/controllers/middlewares"
	"github.com/fsdevblog/shortlink/internal/models"
	"github.com/fsdevblog/shortlink/internal/services"

	"github.com/gin-gonic/gin"
)

// URLShortener контракт сервисного слоя для контроллера.
type URLShortener interface {
	Shorten(ctx context.Context, rawURL string, meta services.CreatorMeta) (*models.Link, error)
	Resolve(ctx context.Context, code string) (*services.Resolution, error)
	List(ctx context.Context) ([]models.Link, error)
}

type shortenRequest struct {
	URL string `json:"url"`
}

type shortenResponse struct {
	Success  bool   `json:"success"`
	ShortURL string `json:"short_url"`
	Code     string `json:"code"`
}

// linkItem элемент списка GET /api/urls. Метаданные создателя сюда
// сознательно не попадают.
type linkItem struct {
	Code        string    `json:"code"`
	ShortURL    string    `json:"short_url"`
	OriginalURL string    `json:"original_url"`
	Clicks      uint64    `json:"clicks"`
	CreatedAt   time.Time `json:"created_at"`
}

type LinkController struct {
	linkService URLShortener
	baseURL     *url.URL
}

func NewLinkController(linkService URLShortener, baseURL *url.URL) *LinkController {
	return &LinkController{
		linkService: linkService,
		baseURL:     baseURL,
	}
}

// CreateShortLink обрабатывает POST /api/shorten.
func (l *LinkController) CreateShortLink(ctx *gin.Context) {
	var req shortenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	link, createErr := l.linkService.Shorten(reqCtx, req.URL, services.CreatorMeta{
		IP:        middlewares.ClientID(ctx.Request),
		UserAgent: ctx.Request.UserAgent(),
	})
	if createErr != nil {
		status, message := shortenError(createErr)
		ctx.JSON(status, gin.H{"error": message})
		return
	}

	ctx.JSON(http.StatusOK, shortenResponse{
		Success:  true,
		ShortURL: l.shortURL(ctx.Request, link.Code),
		Code:     link.Code,
	})
}

// Redirect обрабатывает GET /:code. Неизвестный и синтаксически кривой код
// наружу неразличимы: generic 404 без отражения пути.
func (l *LinkController) Redirect(ctx *gin.Context) {
	code := ctx.Param("code")

	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	resolution, err := l.linkService.Resolve(reqCtx, code)
	if err != nil {
		ctx.String(http.StatusNotFound, "Page not found")
		return
	}
	if resolution.Fallback {
		ctx.Redirect(http.StatusFound, l.origin(ctx.Request))
		return
	}
	ctx.Redirect(http.StatusFound, resolution.Target)
}

// ListLinks обрабатывает GET /api/urls.
func (l *LinkController) ListLinks(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	links, err := l.linkService.List(reqCtx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": ErrInternal.Error()})
		return
	}

	items := make([]linkItem, 0, len(links))
	for _, link := range links {
		items = append(items, linkItem{
			Code:        link.Code,
			ShortURL:    l.shortURL(ctx.Request, link.Code),
			OriginalURL: link.URL,
			Clicks:      link.Clicks,
			CreatedAt:   link.CreatedAt,
		})
	}
	ctx.JSON(http.StatusOK, items)
}

// Home обрабатывает GET / и отдает форму сокращения.
func (l *LinkController) Home(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(homePage))
}

// shortURL вспомогательный метод который собирает короткую ссылку.
func (l *LinkController) shortURL(r *http.Request, code string) string {
	if l.baseURL == nil {
		return fmt.Sprintf("%s/%s", l.origin(r), code)
	}
	return fmt.Sprintf("%s/%s", l.baseURL, code)
}

// origin адрес собственной главной страницы сервиса.
func (l *LinkController) origin(r *http.Request) string {
	if l.baseURL != nil {
		return l.baseURL.String()
	}
	var scheme = "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}
