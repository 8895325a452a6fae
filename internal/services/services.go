package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/shortlink/internal/db"
	"github.com/fsdevblog/shortlink/internal/repositories/memstore"
	"github.com/fsdevblog/shortlink/internal/repositories/sql"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ServiceType string

const (
	ServiceTypeSQLite   ServiceType = "sqlite"
	ServiceTypeInMemory ServiceType = "inMemory"
)

// Services сервисный слой приложения.
type Services struct {
	LinkService *LinkService
	RateLimiter *SlidingWindowLimiter
}

// FactoryParams параметры сборки сервисного слоя.
type FactoryParams struct {
	Conn            any
	Type            ServiceType
	Reputation      ReputationChecker
	FailClosed      bool
	RateLimitWindow time.Duration
	RateLimitMax    int
	Logger          *logrus.Logger
}

func Factory(params FactoryParams) (*Services, error) {
	repo, repoErr := linkRepoFactory(params.Conn, params.Type, params.Logger)
	if repoErr != nil {
		return nil, repoErr
	}
	return &Services{
		LinkService: NewLinkService(LinkServiceParams{
			Repo:       repo,
			Reputation: params.Reputation,
			FailClosed: params.FailClosed,
			Logger:     params.Logger,
		}),
		RateLimiter: NewSlidingWindowLimiter(params.RateLimitWindow, params.RateLimitMax),
	}, nil
}

func linkRepoFactory(conn any, sType ServiceType, logger *logrus.Logger) (LinkRepository, error) {
	switch sType {
	case ServiceTypeSQLite:
		gormDB, ok := conn.(*gorm.DB)
		if !ok {
			return nil, errors.New("invalid connection type. expected *gorm.DB")
		}
		return sql.NewLinkRepo(gormDB, logger), nil
	case ServiceTypeInMemory:
		store, ok := conn.(*db.MemoryStorage)
		if !ok {
			return nil, errors.New("invalid connection type. expected *db.MemoryStorage")
		}
		return memstore.NewLinkRepo(store), nil
	default:
		return nil, fmt.Errorf("unknown service type: %s", sType)
	}
}
