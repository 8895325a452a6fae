package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/shortlink/internal/config"
	"github.com/fsdevblog/shortlink/internal/controllers"
	"github.com/fsdevblog/shortlink/internal/db"
	"github.com/fsdevblog/shortlink/internal/services"
)

type App struct {
	config     config.Config
	dbServices *services.Services
	Logger     *logrus.Logger
}

func New(config config.Config) (*App, error) {
	dbServices, servicesErr := initServices(config)
	if servicesErr != nil {
		return nil, fmt.Errorf("init services: %w", servicesErr)
	}

	return &App{
		config:     config,
		dbServices: dbServices,
		Logger:     config.Logger,
	}, nil
}

// Must вызывает панику если произошла ошибка.
func Must(a *App, err error) *App {
	if err != nil {
		panic(err)
	}
	return a
}

// Run запускает web сервер и блокируется до сигнала остановки.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)

	server := controllers.SetupRouter(controllers.RouterParams{
		LinkService: a.dbServices.LinkService,
		Limiter:     a.dbServices.RateLimiter,
		AppConf:     a.config,
		Logger:      a.Logger,
	})

	go func() {
		if err := server.Run(a.config.ServerAddress); err != nil {
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("Shutdown command received")
	case serverErr = <-errChan:
		a.Logger.WithError(serverErr).Error("router error")
	}

	return serverErr
}

// initServices создает подключение к хранилищу и возвращает сервисный слой
// приложения.
func initServices(appConf config.Config) (*services.Services, error) {
	conn, connErr := db.NewConnectionFactory(db.FactoryConfig{
		StorageType: storageType(appConf.DBType),
		SQLitePath:  appConf.SQLitePath,
	})
	if connErr != nil {
		return nil, connErr //nolint:wrapcheck
	}

	var reputation services.ReputationChecker
	if appConf.SafeBrowsingAPIKey != "" {
		reputation = services.NewSafeBrowsingClient(appConf.SafeBrowsingAPIKey)
	}

	return services.Factory(services.FactoryParams{ //nolint:wrapcheck
		Conn:            conn,
		Type:            serviceType(appConf.DBType),
		Reputation:      reputation,
		FailClosed:      appConf.ReputationFailClosed,
		RateLimitWindow: appConf.RateLimitWindow,
		RateLimitMax:    appConf.RateLimitMax,
		Logger:          appConf.Logger,
	})
}

func storageType(t config.DBType) db.StorageType {
	if t == config.DBTypeSQLite {
		return db.StorageTypeSQLite
	}
	return db.StorageTypeInMemory
}

func serviceType(t config.DBType) services.ServiceType {
	if t == config.DBTypeSQLite {
		return services.ServiceTypeSQLite
	}
	return services.ServiceTypeInMemory
}
