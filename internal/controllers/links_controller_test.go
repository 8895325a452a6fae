package controllers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/fsdevblog/shortlink/internal/config"
	"github.com/fsdevblog/shortlink/internal/models"
	"github.com/fsdevblog/shortlink/internal/services"
	"github.com/fsdevblog/shortlink/internal/services/smocks"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// denyAllLimiter лимитер, отбивающий любой запрос.
type denyAllLimiter struct{}

func (denyAllLimiter) Allow(_ string) bool { return false }

type LinkControllerSuite struct {
	suite.Suite
	linkServMock *smocks.LinkMock
	router       *gin.Engine
	config       *config.Config
}

func (s *LinkControllerSuite) SetupTest() {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s.linkServMock = new(smocks.LinkMock)
	appConf := config.Config{
		ServerAddress: ":80",
		BaseURL:       &url.URL{Scheme: "http", Host: "test.com:8080"},
		Logger:        logger,
	}
	s.config = &appConf
	s.router = SetupRouter(RouterParams{
		LinkService: s.linkServMock,
		AppConf:     appConf,
		Logger:      logger,
	})
}

func (s *LinkControllerSuite) TestCreateShortLink() {
	validURL := "https://test.com/valid"
	code := "abc123"

	s.linkServMock.On("Shorten", mock.Anything, validURL, mock.Anything).
		Return(&models.Link{Code: code, URL: validURL}, nil)

	res := s.makeRequest(http.MethodPost, "/api/shorten", strings.NewReader(`{"url": "`+validURL+`"}`))
	defer res.Body.Close()

	s.Equal(http.StatusOK, res.StatusCode)

	var body struct {
		Success  bool   `json:"success"`
		ShortURL string `json:"short_url"`
		Code     string `json:"code"`
	}
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
	s.True(body.Success)
	s.Equal(code, body.Code)
	s.Equal("http://test.com:8080/"+code, body.ShortURL)
}

func (s *LinkControllerSuite) TestCreateShortLink_InvalidBody() {
	res := s.makeRequest(http.MethodPost, "/api/shorten", strings.NewReader(`{{{`))
	defer res.Body.Close()

	s.Equal(http.StatusBadRequest, res.StatusCode)
	s.linkServMock.AssertNotCalled(s.T(), "Shorten", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LinkControllerSuite) TestCreateShortLink_ServiceErrors() {
	tests := []struct {
		name       string
		rawURL     string
		serviceErr error
		wantStatus int
	}{
		{name: "missing input", rawURL: "", serviceErr: services.ErrMissingInput, wantStatus: http.StatusBadRequest},
		{name: "too long", rawURL: "https://l.example", serviceErr: services.ErrTooLong, wantStatus: http.StatusBadRequest},
		{name: "malformed", rawURL: "zzz", serviceErr: services.ErrMalformed, wantStatus: http.StatusBadRequest},
		{name: "scheme", rawURL: "javascript:alert(1)", serviceErr: services.ErrDisallowedScheme, wantStatus: http.StatusBadRequest},
		{name: "blocked", rawURL: "http://secure-login.tk", serviceErr: services.ErrBlocked, wantStatus: http.StatusBadRequest},
		{name: "store down", rawURL: "https://ok.example", serviceErr: services.ErrStoreUnavailable, wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			s.linkServMock.On("Shorten", mock.Anything, tt.rawURL, mock.Anything).
				Return(nil, tt.serviceErr)

			payload, _ := json.Marshal(map[string]string{"url": tt.rawURL})
			res := s.makeRequest(http.MethodPost, "/api/shorten", strings.NewReader(string(payload)))
			defer res.Body.Close()

			s.Equal(tt.wantStatus, res.StatusCode)

			var body struct {
				Error string `json:"error"`
			}
			s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
			s.NotEmpty(body.Error)
			// Внутренние детали наружу не уходят.
			s.NotContains(body.Error, "[service]")
		})
	}
}

func (s *LinkControllerSuite) TestRedirect() {
	validCode := "abc123"
	notExistCode := "zzzzzz"
	fallbackCode := "fback1"
	redirectTo := "https://test.com/test/123"

	s.linkServMock.On("Resolve", mock.Anything, validCode).
		Return(&services.Resolution{Target: redirectTo}, nil)
	s.linkServMock.On("Resolve", mock.Anything, notExistCode).
		Return(nil, services.ErrRecordNotFound)
	s.linkServMock.On("Resolve", mock.Anything, fallbackCode).
		Return(&services.Resolution{Fallback: true}, nil)

	tests := []struct {
		name         string
		requestURI   string
		wantStatus   int
		wantLocation string
	}{
		{name: "valid", requestURI: validCode, wantStatus: http.StatusFound, wantLocation: redirectTo},
		{name: "not exist", requestURI: notExistCode, wantStatus: http.StatusNotFound},
		{name: "fallback home", requestURI: fallbackCode, wantStatus: http.StatusFound, wantLocation: s.config.BaseURL.String()},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			res := s.makeRequest(http.MethodGet, "/"+tt.requestURI, nil)
			defer res.Body.Close()

			s.Equal(tt.wantStatus, res.StatusCode)
			s.Equal(tt.wantLocation, res.Header.Get("Location"))
		})
	}
}

func (s *LinkControllerSuite) TestRedirect_MalformedCode() {
	malformed := "ab%20c!"
	s.linkServMock.On("Resolve", mock.Anything, mock.Anything).
		Return(nil, services.ErrInvalidCodeFormat)

	res := s.makeRequest(http.MethodGet, "/"+malformed, nil)
	defer res.Body.Close()

	s.Equal(http.StatusNotFound, res.StatusCode)

	// Сырой код не отражается в ответе.
	body, _ := io.ReadAll(res.Body)
	s.NotContains(string(body), "ab c!")
}

func (s *LinkControllerSuite) TestListLinks() {
	now := time.Now().UTC()
	s.linkServMock.On("List", mock.Anything).Return([]models.Link{
		{Code: "new123", URL: "https://example.com/new", Clicks: 1, CreatedAt: now, CreatorIP: "9.9.9.9", UserAgent: "secret-agent"},
		{Code: "old123", URL: "https://example.com/old", Clicks: 7, CreatedAt: now.Add(-time.Hour)},
	}, nil)

	res := s.makeRequest(http.MethodGet, "/api/urls", nil)
	defer res.Body.Close()

	s.Equal(http.StatusOK, res.StatusCode)

	raw, readErr := io.ReadAll(res.Body)
	s.Require().NoError(readErr)

	var items []map[string]any
	s.Require().NoError(json.Unmarshal(raw, &items))
	s.Require().Len(items, 2)
	s.Equal("new123", items[0]["code"])
	s.Equal("http://test.com:8080/new123", items[0]["short_url"])
	s.Equal("https://example.com/new", items[0]["original_url"])

	// Метаданные создателя наружу не отдаются.
	s.NotContains(string(raw), "9.9.9.9")
	s.NotContains(string(raw), "secret-agent")
}

func (s *LinkControllerSuite) TestListLinks_StoreError() {
	s.linkServMock.On("List", mock.Anything).Return(nil, services.ErrStoreUnavailable)

	res := s.makeRequest(http.MethodGet, "/api/urls", nil)
	defer res.Body.Close()

	s.Equal(http.StatusInternalServerError, res.StatusCode)
}

func (s *LinkControllerSuite) TestRateLimited() {
	router := SetupRouter(RouterParams{
		LinkService: s.linkServMock,
		Limiter:     denyAllLimiter{},
		AppConf:     *s.config,
		Logger:      s.config.Logger,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/shorten", strings.NewReader(`{"url":"https://example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	res := recorder.Result()
	defer res.Body.Close()

	s.Equal(http.StatusTooManyRequests, res.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
	s.NotEmpty(body.Error)
	s.linkServMock.AssertNotCalled(s.T(), "Shorten", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LinkControllerSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/api/shorten", nil)
	req.Header.Set("Origin", "https://client.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)

	res := recorder.Result()
	defer res.Body.Close()

	s.Equal(http.StatusNoContent, res.StatusCode)
	// Отражается конкретный Origin, не wildcard.
	s.Equal("https://client.example", res.Header.Get("Access-Control-Allow-Origin"))
}

func (s *LinkControllerSuite) TestHome() {
	res := s.makeRequest(http.MethodGet, "/", nil)
	defer res.Body.Close()

	s.Equal(http.StatusOK, res.StatusCode)
	s.Contains(res.Header.Get("Content-Type"), "text/html")
}

// makeRequest вспомогательная функция создающая тестовый http запрос.
func (s *LinkControllerSuite) makeRequest(method, target string, body io.Reader) *http.Response {
	request := httptest.NewRequest(method, target, body)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, request)

	return recorder.Result()
}

func TestLinkControllerSuite(t *testing.T) {
	suite.Run(t, new(LinkControllerSuite))
}
