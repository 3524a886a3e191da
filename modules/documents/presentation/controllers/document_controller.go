package controllers

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/ati-intranet/portal/modules/documents/domain/entities/document"
	"github.com/ati-intranet/portal/modules/documents/presentation/templates/pages"
	"github.com/ati-intranet/portal/modules/documents/services"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/middleware"
)

type DocumentController struct {
	app             application.Application
	documentService *services.DocumentService
	basePath        string
}

func NewDocumentController(app application.Application) application.Controller {
	return &DocumentController{
		app:             app,
		documentService: app.Service(services.DocumentService{}).(*services.DocumentService),
		basePath:        "/documents",
	}
}

func (c *DocumentController) Key() string {
	return c.basePath
}

func (c *DocumentController) Register(r *mux.Router) {
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
	router.HandleFunc("", c.List).Methods(http.MethodGet)
}

func (c *DocumentController) List(w http.ResponseWriter, r *http.Request) {
	docType := r.URL.Query().Get("type")
	if !document.ValidType(docType) {
		docType = document.TypeAll
	}
	docs, err := c.documentService.GetAll(r.Context(), docType)
	if err != nil {
		middleware.UpstreamError(w, r, err, "")
		return
	}
	props := &pages.IndexProps{
		Type:      docType,
		Types:     document.Types,
		Documents: docs,
	}
	templ.Handler(pages.Index(props), templ.WithStreaming()).ServeHTTP(w, r)
}
