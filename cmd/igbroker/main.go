package main

import (
	"context"
	"os"

	"github.com/leadkit/igbroker/broker"
	"github.com/leadkit/igbroker/instagram"
	instagramhttp "github.com/leadkit/igbroker/modules/instagram"
	"github.com/leadkit/igbroker/pkg/config"
	"github.com/leadkit/igbroker/pkg/httpserver"
	"github.com/leadkit/igbroker/pkg/logger"
	"github.com/leadkit/igbroker/pkg/requestid"
)

type appConfig struct {
	Broker broker.Config
	Server httpserver.Config
	Log    logger.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithConfig(cfg.Log),
		logger.WithAttr(logger.Component("igbroker")),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	store, err := broker.NewFileStore(cfg.Broker.StateDir)
	if err != nil {
		log.Error("failed to open state directory", logger.Error(err))
		os.Exit(1)
	}

	registry := broker.NewRegistry(newClient, instagram.Options{
		Proxy:          cfg.Broker.Proxy,
		RequestTimeout: cfg.Broker.RequestTimeout,
	})
	svc := broker.NewService(registry, store, broker.WithLogger(log))

	router := instagramhttp.Router(svc, instagramhttp.RouterOptions{Logger: log})

	srv := httpserver.NewFromConfig(cfg.Server, httpserver.WithLogger(log))
	if err := srv.Run(context.Background(), router); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}
