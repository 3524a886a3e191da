package application

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"reflect"

	"github.com/BurntSushi/toml"
	"github.com/benbjohnson/hashfs"
	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/ati-intranet/portal/pkg/apiclient"
	"github.com/ati-intranet/portal/pkg/constants"
	"github.com/ati-intranet/portal/pkg/eventbus"
	"github.com/ati-intranet/portal/pkg/session"
	"github.com/ati-intranet/portal/pkg/spotlight"
	"github.com/ati-intranet/portal/pkg/types"
)

// translate localizes navigation labels; a label without a message keeps its
// id so a missing translation shows up instead of taking the page down.
func translate(localizer *i18n.Localizer, items []types.NavigationItem) []types.NavigationItem {
	out := make([]types.NavigationItem, len(items))
	for i, item := range items {
		label, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: item.Name})
		if err != nil || label == "" {
			label = item.Name
		}
		item.Name = label
		item.Children = translate(localizer, item.Children)
		out[i] = item
	}
	return out
}

type ApplicationOptions struct {
	API                *apiclient.Client
	Sessions           *session.Manager
	Profiles           session.ProfileCache
	EventBus           eventbus.EventBus
	Logger             *logrus.Logger
	Bundle             *i18n.Bundle
	SupportedLanguages []string
}

func LoadBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return bundle
}

func defaultSupportedLanguageCodes() []string {
	return []string{"en", "zh"}
}

func New(opts *ApplicationOptions) Application {
	sl := spotlight.New()
	quickLinks := &spotlight.QuickLinks{}
	sl.Register(quickLinks)

	supportedLanguages := opts.SupportedLanguages
	if len(supportedLanguages) == 0 {
		supportedLanguages = defaultSupportedLanguageCodes()
	}

	profiles := opts.Profiles
	if profiles == nil {
		profiles = session.NopCache{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &application{
		api:                opts.API,
		sessions:           opts.Sessions,
		profiles:           profiles,
		logger:             logger,
		eventPublisher:     opts.EventBus,
		controllers:        make(map[string]Controller),
		controllerOrder:    []string{},
		services:           make(map[reflect.Type]interface{}),
		quickLinks:         quickLinks,
		spotlight:          sl,
		bundle:             opts.Bundle,
		supportedLanguages: supportedLanguages,
	}
}

// UseApp returns the Application bound to ctx by middleware.Provide.
func UseApp(ctx context.Context) (Application, bool) {
	app, ok := ctx.Value(constants.AppKey).(Application)
	return app, ok
}

func WithApp(ctx context.Context, app Application) context.Context {
	return context.WithValue(ctx, constants.AppKey, app)
}

// application with a dynamically extendable service registry
type application struct {
	api                *apiclient.Client
	sessions           *session.Manager
	profiles           session.ProfileCache
	logger             *logrus.Logger
	eventPublisher     eventbus.EventBus
	services           map[reflect.Type]interface{}
	controllers        map[string]Controller
	controllerOrder    []string
	middleware         []mux.MiddlewareFunc
	hashFsAssets       []*hashfs.FS
	assets             []*embed.FS
	bundle             *i18n.Bundle
	spotlight          spotlight.Spotlight
	quickLinks         *spotlight.QuickLinks
	navItems           []types.NavigationItem
	supportedLanguages []string
}

func (app *application) API() *apiclient.Client {
	return app.api
}

func (app *application) Sessions() *session.Manager {
	return app.sessions
}

func (app *application) Profiles() session.ProfileCache {
	return app.profiles
}

func (app *application) Logger() *logrus.Logger {
	return app.logger
}

func (app *application) Spotlight() spotlight.Spotlight {
	return app.spotlight
}

func (app *application) QuickLinks() *spotlight.QuickLinks {
	return app.quickLinks
}

func (app *application) NavItems(localizer *i18n.Localizer) []types.NavigationItem {
	return translate(localizer, app.navItems)
}

func (app *application) RegisterNavItems(items ...types.NavigationItem) {
	app.navItems = append(app.navItems, items...)
}

func (app *application) Middleware() []mux.MiddlewareFunc {
	return app.middleware
}

func (app *application) EventPublisher() eventbus.EventBus {
	return app.eventPublisher
}

func (app *application) Controllers() []Controller {
	controllers := make([]Controller, 0, len(app.controllerOrder))
	for _, key := range app.controllerOrder {
		controllers = append(controllers, app.controllers[key])
	}
	return controllers
}

func (app *application) Assets() []*embed.FS {
	return app.assets
}

func (app *application) HashFsAssets() []*hashfs.FS {
	return app.hashFsAssets
}

func (app *application) RegisterControllers(controllers ...Controller) {
	for _, c := range controllers {
		if _, exists := app.controllers[c.Key()]; !exists {
			app.controllerOrder = append(app.controllerOrder, c.Key())
		}
		app.controllers[c.Key()] = c
	}
}

func (app *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	app.middleware = append(app.middleware, middleware...)
}

func (app *application) RegisterHashFsAssets(fs ...*hashfs.FS) {
	app.hashFsAssets = append(app.hashFsAssets, fs...)
}

func (app *application) RegisterAssets(fs ...*embed.FS) {
	app.assets = append(app.assets, fs...)
}

func (app *application) RegisterLocaleFiles(fs ...*embed.FS) {
	for _, localeFs := range fs {
		err := iofs.WalkDir(localeFs, ".", func(path string, d iofs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			raw, err := localeFs.ReadFile(path)
			if err != nil {
				return err
			}
			_, err = app.bundle.ParseMessageFileBytes(raw, filepath.Base(path))
			return err
		})
		if err != nil {
			panic(fmt.Errorf("locale files: %w", err))
		}
	}
}

// RegisterServices registers a new service in the application by its type
func (app *application) RegisterServices(services ...interface{}) {
	for _, service := range services {
		serviceType := reflect.TypeOf(service).Elem()
		app.services[serviceType] = service
	}
}

// Service retrieves a service by its type
func (app *application) Service(service interface{}) interface{} {
	serviceType := reflect.TypeOf(service)
	svc, exists := app.services[serviceType]
	if !exists {
		panic(fmt.Sprintf("service %s not found", serviceType.Name()))
	}
	return svc
}

func (app *application) Services() map[reflect.Type]interface{} {
	return app.services
}

func (app *application) Bundle() *i18n.Bundle {
	return app.bundle
}

func (app *application) GetSupportedLanguages() []string {
	return app.supportedLanguages
}
