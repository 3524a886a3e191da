package controllers

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/ati-intranet/portal/modules/holidays/domain/entities/holiday"
	"github.com/ati-intranet/portal/modules/holidays/presentation/controllers/dtos"
	"github.com/ati-intranet/portal/modules/holidays/presentation/templates/pages"
	"github.com/ati-intranet/portal/modules/holidays/services"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/authz"
	"github.com/ati-intranet/portal/pkg/composables"
	"github.com/ati-intranet/portal/pkg/intl"
	"github.com/ati-intranet/portal/pkg/middleware"
	"github.com/ati-intranet/portal/pkg/shared"
)

type HolidayController struct {
	app            application.Application
	holidayService *services.HolidayService
	basePath       string
	now            func() time.Time
}

func NewHolidayController(app application.Application) application.Controller {
	return &HolidayController{
		app:            app,
		holidayService: app.Service(services.HolidayService{}).(*services.HolidayService),
		basePath:       "/holidays",
		now:            time.Now,
	}
}

func (c *HolidayController) Key() string {
	return c.basePath
}

func (c *HolidayController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(
		middleware.Authorize(),
		middleware.RedirectNotAuthenticated(),
		middleware.ProvideLocalizer(c.app),
		middleware.ProvideProfile(),
		middleware.ProvideFlash(),
		middleware.NavItems(),
		middleware.WithPageContext(),
	)
	router.HandleFunc("", c.Calendar).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/new", c.GetNew).Methods(http.MethodGet)
}

func canManage(r *http.Request) bool {
	return composables.CanAuthz(r.Context(), authz.ObjectHolidays, "manage")
}

func (c *HolidayController) Calendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil || year <= 0 {
		year = c.now().Year()
	}
	client := q.Get("client")
	if client == "" {
		client = holiday.AllClients
	}

	list, err := c.holidayService.GetByYear(r.Context(), year)
	if err != nil {
		middleware.UpstreamError(w, r, err, "")
		return
	}
	clients := holiday.Clients(list)
	if client != holiday.AllClients && !slices.Contains(clients, client) {
		clients = append(clients, client)
	}
	filtered := holiday.ByClient(list, client)
	props := &pages.IndexProps{
		Year:      year,
		Years:     years(c.now().Year(), year),
		Client:    client,
		Clients:   clients,
		Groups:    holiday.GroupByMonth(filtered),
		CanManage: canManage(r),
	}
	templ.Handler(pages.Index(props), templ.WithStreaming()).ServeHTTP(w, r)
}

// years offers the default range plus the selected year when it falls outside.
func years(current, selected int) []int {
	out := holiday.Years(current)
	if !slices.Contains(out, selected) {
		out = append(out, selected)
		slices.Sort(out)
	}
	return out
}

func (c *HolidayController) newProps(dto *dtos.CreateHolidaysDTO) *pages.NewProps {
	return &pages.NewProps{
		Form:   dto,
		Years:  years(c.now().Year(), dto.Year),
		Errors: map[string]string{},
	}
}

// GetNew also serves the add/remove row buttons, which resubmit the form
// here with a new rows count.
func (c *HolidayController) GetNew(w http.ResponseWriter, r *http.Request) {
	if !canManage(r) {
		shared.Redirect(w, r, c.basePath)
		return
	}
	dto, err := composables.UseForm(&dtos.CreateHolidaysDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Year == 0 {
		dto.Year = c.now().Year()
	}
	rows := len(dto.Rows)
	if n, err := strconv.Atoi(r.URL.Query().Get("rows")); err == nil {
		rows = n
	}
	dto.Resize(rows)
	templ.Handler(pages.New(c.newProps(dto)), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *HolidayController) Create(w http.ResponseWriter, r *http.Request) {
	if !canManage(r) {
		middleware.Forbidden(w, r)
		return
	}
	ctx := r.Context()
	dto, err := composables.UseForm(&dtos.CreateHolidaysDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dto.Resize(len(dto.Rows))
	props := c.newProps(dto)
	if errorsMap, ok := dto.Ok(ctx); !ok {
		props.Errors = errorsMap
		w.WriteHeader(http.StatusUnprocessableEntity)
		templ.Handler(pages.New(props), templ.WithStreaming()).ServeHTTP(w, r)
		return
	}
	batch := dto.Holidays()
	if err := c.holidayService.AddBulk(ctx, dto.Year, batch); err != nil {
		if middleware.IsUnauthorized(err) {
			middleware.UpstreamError(w, r, err, "")
			return
		}
		composables.UseLogger(ctx).WithError(err).WithField("count", len(batch)).Warn("add holidays failed")
		props.Error = intl.T(ctx, "Holidays.Errors.AddFailed")
		w.WriteHeader(http.StatusBadGateway)
		templ.Handler(pages.New(props), templ.WithStreaming()).ServeHTTP(w, r)
		return
	}
	shared.FlashSuccess(w, intl.T(ctx, "Holidays.Added", map[string]any{"Count": len(batch)}))
	shared.Redirect(w, r, c.basePath+"?"+url.Values{"year": {strconv.Itoa(dto.Year)}}.Encode())
}
