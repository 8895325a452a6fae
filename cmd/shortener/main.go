package main

import (
	"github.com/fsdevblog/shortlink/internal/app"
	"github.com/fsdevblog/shortlink/internal/bmeta"
	"github.com/fsdevblog/shortlink/internal/config"
)

// Заполняются через ldflags при сборке.
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	bmeta.Print(buildVersion, buildDate, buildCommit)

	appConf := config.MustLoadConfig()

	a := app.Must(app.New(*appConf))

	a.Logger.WithField("config", appConf).Info("Starting server")
	if err := a.Run(); err != nil {
		panic(err)
	}
}
