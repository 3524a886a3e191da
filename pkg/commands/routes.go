package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/gorilla/mux"

	internalserver "github.com/ati-intranet/portal/internal/server"
	"github.com/ati-intranet/portal/modules/core/presentation/controllers"
	"github.com/ati-intranet/portal/pkg/application"
	"github.com/ati-intranet/portal/pkg/configuration"
	"github.com/ati-intranet/portal/pkg/routing"
)

type routeRow struct {
	Methods string
	Path    string
	Class   routing.RouteClass
}

// PrintRoutes lists the routes of a portal built from mods, one per line.
func PrintRoutes(w io.Writer, mods ...application.Module) error {
	app, err := newApplication(mods...)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	app.RegisterControllers(controllers.NewStaticFilesController(app.HashFsAssets()))
	conf := configuration.Use()
	srv, err := internalserver.Default(&internalserver.DefaultOptions{
		Logger:        app.Logger(),
		Configuration: conf,
		Application:   app,
		Entrypoint:    "server",
	})
	if err != nil {
		return err
	}
	rules, err := routing.LoadAllowlistOrDefault("", "server")
	if err != nil {
		return err
	}
	rows, err := collectRoutes(srv.Router(), routing.NewClassifier(rules))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METHODS\tPATH\tCLASS")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Methods, r.Path, r.Class)
	}
	return tw.Flush()
}

func collectRoutes(router *mux.Router, classifier *routing.Classifier) ([]routeRow, error) {
	var rows []routeRow
	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil || strings.TrimSpace(path) == "" {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			// prefixes and subrouters carry no methods
			return nil
		}
		rows = append(rows, routeRow{
			Methods: strings.Join(methods, ","),
			Path:    path,
			Class:   classifier.ClassifyPath(path),
		})
		return nil
	})
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Path == rows[j].Path {
			return rows[i].Methods < rows[j].Methods
		}
		return rows[i].Path < rows[j].Path
	})
	return rows, err
}
