package controllers

import (
	"net/http"

	"github.com/benbjohnson/hashfs"
	"github.com/gorilla/mux"

	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/configuration"
)

type StaticFilesController struct {
	fsInstances []*hashfs.FS
}

func (s *StaticFilesController) Key() string {
	return "/assets"
}

func (s *StaticFilesController) Register(r *mux.Router) {
	handlers := make([]http.Handler, 0, len(s.fsInstances))
	for _, fsys := range s.fsInstances {
		handlers = append(handlers, hashfs.FileServer(fsys))
	}
	devMode := configuration.Use().GoAppEnvironment != configuration.Production
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path
		for i, fsys := range s.fsInstances {
			f, err := fsys.Open(name)
			if err != nil {
				continue
			}
			_ = f.Close()
			if devMode {
				w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			}
			handlers[i].ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
	r.PathPrefix("/assets/").Handler(http.StripPrefix("/assets/", handler))
}

func NewStaticFilesController(fsInstances []*hashfs.FS) application.Controller {
	return &StaticFilesController{
		fsInstances: fsInstances,
	}
}
