package commands

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ati-intranet/portal/pkg/apiclient"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/configuration"
	"github.com/ati-intranet/portal/pkg/eventbus"
	"github.com/ati-intranet/portal/pkg/session"
)

// newApplication registers mods on an application wired from the
// environment, without starting a server.
func newApplication(mods ...application.Module) (application.Application, error) {
	conf := configuration.Use()
	logger := conf.Logger()
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	api, err := apiclient.New(apiclient.Options{
		BaseURL:         conf.API.BaseURL,
		Timeout:         conf.API.Timeout,
		RequestIDHeader: conf.RequestIDHeader,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}
	app := application.New(&application.ApplicationOptions{
		API:      api,
		Sessions: session.NewManager(conf.TokenCookieKey, time.Hour, false),
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
		Bundle:   application.LoadBundle(),
	})
	for _, m := range mods {
		if err := m.Register(app); err != nil {
			return nil, err
		}
	}
	return app, nil
}
