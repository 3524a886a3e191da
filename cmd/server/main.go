package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/ati-intranet/portal/internal/server"
	"github.com/ati-intranet/portal/modules"
	"github.com/ati-intranet/portal/modules/core/presentation/controllers"
	"github.com/ati-intranet/portal/pkg/apiclient"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/configuration"
	"github.com/ati-intranet/portal/pkg/eventbus"
	"github.com/ati-intranet/portal/pkg/logging"
	"github.com/ati-intranet/portal/pkg/metrics"
	"github.com/ati-intranet/portal/pkg/session"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	defer conf.Unload()
	logger := conf.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Set up OpenTelemetry if enabled
	if conf.OpenTelemetry.Enabled {
		tracingCleanup := logging.SetupTracing(ctx, conf.OpenTelemetry.ServiceName, conf.OpenTelemetry.TempoURL)
		defer tracingCleanup()
		logger.Info("OpenTelemetry tracing enabled, exporting to Tempo at " + conf.OpenTelemetry.TempoURL)
	}

	api, err := apiclient.New(apiclient.Options{
		BaseURL:         conf.API.BaseURL,
		Timeout:         conf.API.Timeout,
		RequestIDHeader: conf.RequestIDHeader,
		Logger:          logger,
	})
	if err != nil {
		log.Fatalf("failed to create api client: %v", err)
	}
	profiles, err := session.NewProfileCache(conf.ProfileCache.Storage, conf.RedisURL, conf.ProfileCache.TTL)
	if err != nil {
		log.Fatalf("failed to create profile cache: %v", err)
	}

	app := application.New(&application.ApplicationOptions{
		API:      api,
		Sessions: session.NewManager(conf.TokenCookieKey, conf.SessionDuration, conf.GoAppEnvironment == configuration.Production),
		Profiles: profiles,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
		Bundle:   application.LoadBundle(),
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}
	app.RegisterControllers(controllers.NewStaticFilesController(app.HashFsAssets()))
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Entrypoint:    "server",
	})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	logger.Infof("API: %s", conf.API.BaseURL)
	log.Printf("Listening on: %s\n", conf.Origin)
	if err := serverInstance.Start(ctx, conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
