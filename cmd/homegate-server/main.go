package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	homegate "github.com/mbeutler/homegate-go"
	"github.com/mbeutler/homegate-go/internal/httpapi"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

type config struct {
	Addr           string   `env:"HOMEGATE_ADDR" envDefault:":8080"`
	AllowedOrigins []string `env:"HOMEGATE_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	BaseURL        string   `env:"HOMEGATE_BASE_URL"`
	LogLevel       string   `env:"HOMEGATE_LOG_LEVEL" envDefault:"info"`
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	if err := godotenv.Load(); err != nil {
		logger.WithError(err).Debug("no .env file loaded")
	}

	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		logger.WithError(err).Fatal("can't parse environment")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithError(err).Fatal("can't parse log level")
	}
	logger.SetLevel(level)

	client := homegate.NewClient(homegate.Config{
		BaseURL: cfg.BaseURL,
		Logger:  logger,
	})

	httpapi.ExposeBuildInfo(version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler := httpapi.NewHandler(client, logger)
	serverCfg := httpapi.Config{
		Addr:           cfg.Addr,
		AllowedOrigins: cfg.AllowedOrigins,
	}
	if err := httpapi.Run(ctx, serverCfg, logger, handler); err != nil {
		logger.WithError(err).Fatal("server failed")
	}

	logger.Info("server stopped")
}
