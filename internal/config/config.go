package config

import (
	"flag"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

type DBType string

const (
	DBTypeSQLite   DBType = "sqlite"
	DBTypeInMemory DBType = "inMemory"
)

type Config struct {
	// Адрес на котором запустится сервер
	ServerAddress string `env:"SERVER_ADDRESS"`
	// Базовый адрес результирующей короткой ссылки
	BaseURL *url.URL `env:"BASE_URL"`
	// Тип хранилища
	DBType DBType `env:"DB" envDefault:"inMemory"`
	// Путь к файлу sqlite
	SQLitePath string `env:"SQLITE_PATH"`
	// Ключ Google Safe Browsing. Пустой ключ отключает внешнюю проверку.
	SafeBrowsingAPIKey string `env:"SAFE_BROWSING_API_KEY"`
	// Политика при ошибке внешней проверки: по умолчанию fail-open,
	// флаг переводит в fail-closed.
	ReputationFailClosed bool `env:"REPUTATION_FAIL_CLOSED"`
	// Лимитер запросов
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"10"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"60s"`

	Logger *logrus.Logger
}

func LoadConfig() (*Config, error) {
	var flagsConfig, envConfig Config
	logger := initLogger()

	if err := env.Parse(&envConfig); err != nil {
		return nil, errors.Wrapf(err, "parse ENV config error")
	}

	loadsFlags(&flagsConfig)

	conf := mergeConfig(&envConfig, &flagsConfig)
	conf.Logger = logger
	return conf, nil
}

// MustLoadConfig вызывает панику если конфигурацию не удалось загрузить.
func MustLoadConfig() *Config {
	conf, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return conf
}

// loadsFlags парсит флаги командной строки.
func loadsFlags(flagsConfig *Config) {
	flag.StringVar(&flagsConfig.ServerAddress, "a", "localhost:8080", "Адрес сервера")
	flag.StringVar(&flagsConfig.SQLitePath, "f", "shortlink.db", "Путь к файлу sqlite")

	bDesc := "Базовый адрес результирующей короткой ссылки (по умолчанию Scheme://Host запущенного сервера)"
	flag.Func("b", bDesc, func(rawURL string) error {
		parsedURL, err := url.ParseRequestURI(rawURL)
		if err != nil {
			return errors.Wrap(err, "failed to parse base url")
		}

		// создаем новый инстанс, отсекая тем самым Path и Query если они заданы в базовом урле.
		flagsConfig.BaseURL = &url.URL{
			Scheme: parsedURL.Scheme,
			Host:   parsedURL.Host,
		}
		return nil
	})

	flag.Parse()
}

// mergeConfig сливает структуры для env и флагов. Значения из env имеют
// приоритет, флаги закрывают дыры.
func mergeConfig(envConfig, flagsConfig *Config) *Config {
	return &Config{
		ServerAddress:        defaultIfBlank[string](envConfig.ServerAddress, flagsConfig.ServerAddress),
		BaseURL:              defaultIfBlank[*url.URL](envConfig.BaseURL, flagsConfig.BaseURL),
		DBType:               defaultIfBlank[DBType](envConfig.DBType, flagsConfig.DBType),
		SQLitePath:           defaultIfBlank[string](envConfig.SQLitePath, flagsConfig.SQLitePath),
		SafeBrowsingAPIKey:   envConfig.SafeBrowsingAPIKey,
		ReputationFailClosed: envConfig.ReputationFailClosed,
		RateLimitMax:         envConfig.RateLimitMax,
		RateLimitWindow:      envConfig.RateLimitWindow,
	}
}

func defaultIfBlank[T any](value T, defaultValue T) T {
	if v, ok := any(value).(string); ok && v == "" {
		return defaultValue
	}
	if v, ok := any(value).(DBType); ok && v == "" {
		return defaultValue
	}
	if v, ok := any(value).(*url.URL); ok && v == nil {
		return defaultValue
	}
	return value
}
