package server

import (
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/ati-intranet/portal/modules/core/presentation/controllers"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/configuration"
	"github.com/ati-intranet/portal/pkg/constants"
	"github.com/ati-intranet/portal/pkg/metrics"
	"github.com/ati-intranet/portal/pkg/middleware"
	"github.com/ati-intranet/portal/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Entrypoint    string
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	conf := options.Configuration

	loggerOpts := middleware.DefaultLoggerOptions()
	loggerOpts.Entrypoint = options.Entrypoint

	// Core middleware stack with tracing capabilities
	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, loggerOpts), // This creates the root span for each request

		middleware.TracedMiddleware("app"),
		middleware.Provide(constants.AppKey, app),

		middleware.TracedMiddleware("cors"),
		middleware.Cors(conf.CorsOrigins()...),

		middleware.OpsGuard(conf, options.Entrypoint),
	}
	if conf.Prometheus.Enabled {
		middlewares = append(middlewares, metrics.Instrument())
	}

	// Add rate limiting middleware if enabled
	if conf.RateLimit.Enabled && conf.RateLimit.GlobalRPS > 0 {
		store := middleware.NewRateLimitStore(conf.RateLimit.Storage, conf.RateLimit.RedisURL, options.Logger)

		middlewares = append(middlewares,
			middleware.TracedMiddleware("rateLimit"),
			middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerPeriod: conf.RateLimit.GlobalRPS,
				Store:             store,
			}),
		)
	}

	middlewares = append(middlewares,
		middleware.TracedMiddleware("requestParams"),
		middleware.RequestParams(),
	)

	app.RegisterMiddleware(middlewares...)

	handlerOpts := controllers.ErrorHandlersOptions{
		Entrypoint: options.Entrypoint,
	}
	serverInstance := server.NewHTTPServer(
		app,
		controllers.NotFound(app, handlerOpts),
		controllers.MethodNotAllowed(app, handlerOpts),
	)
	return serverInstance, nil
}
