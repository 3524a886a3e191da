package controllers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/ati-intranet/portal/modules/core/domain/entities/session"
	"github.com/ati-intranet/portal/modules/core/presentation/controllers/dtos"
	"github.com/ati-intranet/portal/modules/core/presentation/templates/pages"
	"github.com/ati-intranet/portal/modules/core/services"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/configuration"
	"github.com/ati-intranet/portal/pkg/intl"
	"github.com/ati-intranet/portal/pkg/middleware"
	"github.com/ati-intranet/portal/pkg/shared"
)

func NewLoginController(app application.Application) application.Controller {
	return &LoginController{
		app:         app,
		authService: app.Service(services.AuthService{}).(*services.AuthService),
	}
}

type LoginController struct {
	app         application.Application
	authService *services.AuthService
	limiter     *middleware.LoginLimiter
}

func (c *LoginController) Key() string {
	return "/login"
}

func (c *LoginController) Register(r *mux.Router) {
	conf := configuration.Use()
	if conf.RateLimit.Enabled && conf.RateLimit.LoginPerMinute > 0 {
		store := middleware.NewRateLimitStore(conf.RateLimit.Storage, conf.RateLimit.RedisURL, c.app.Logger())
		c.limiter = middleware.NewLoginLimiter(store, conf.RateLimit.LoginPerMinute)
	}

	router := r.PathPrefix("/login").Subrouter()
	router.Use(
		middleware.Authorize(),
		middleware.ProvideLocalizer(c.app),
		middleware.ProvideFlash(),
		middleware.WithPageContext(),
	)
	router.HandleFunc("", c.Get).Methods(http.MethodGet)
	router.HandleFunc("", c.Post).Methods(http.MethodPost)
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	if u, err := url.Parse(next); err != nil || u.Host != "" {
		return "/"
	}
	return next
}

func (c *LoginController) render(w http.ResponseWriter, r *http.Request, status int, props *pages.LoginProps) {
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	templ.Handler(pages.Login(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *LoginController) Get(w http.ResponseWriter, r *http.Request) {
	if _, err := composables.UseToken(r.Context()); err == nil {
		http.Redirect(w, r, safeNext(r.URL.Query().Get("next")), http.StatusFound)
		return
	}
	c.render(w, r, http.StatusOK, &pages.LoginProps{
		Next:   r.URL.Query().Get("next"),
		Errors: map[string]string{},
	})
}

func (c *LoginController) Post(w http.ResponseWriter, r *http.Request) {
	if c.limiter != nil && !c.limiter.Allow(w, r) {
		c.render(w, r, http.StatusTooManyRequests, &pages.LoginProps{
			Error:  intl.T(r.Context(), "Login.Errors.TooManyAttempts"),
			Errors: map[string]string{},
		})
		return
	}

	dto, err := composables.UseForm(&dtos.LoginDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	props := &pages.LoginProps{Username: dto.Username, Next: dto.Next}
	if errorsMap, ok := dto.Ok(r.Context()); !ok {
		props.Errors = errorsMap
		c.render(w, r, http.StatusUnprocessableEntity, props)
		return
	}

	token, err := c.authService.Login(r.Context(), dto.Username, dto.Password)
	if err != nil {
		logger := composables.UseLogger(r.Context()).WithField("username", dto.Username)
		props.Errors = map[string]string{}
		if errors.Is(err, services.ErrInvalidCredentials) {
			logger.Info("login rejected")
			props.Error = intl.T(r.Context(), "Login.Errors.InvalidCredentials")
			c.render(w, r, http.StatusUnauthorized, props)
			return
		}
		logger.WithError(err).Error("login failed")
		props.Error = intl.T(r.Context(), "Login.Errors.Failed")
		c.render(w, r, http.StatusBadGateway, props)
		return
	}

	c.app.Sessions().Set(w, token)
	ev := &session.SignedInEvent{Username: dto.Username, UserAgent: r.UserAgent(), At: time.Now()}
	if ip, ok := composables.UseIP(r.Context()); ok {
		ev.IP = ip
	}
	c.app.EventPublisher().Publish(ev)
	shared.Redirect(w, r, safeNext(dto.Next))
}
