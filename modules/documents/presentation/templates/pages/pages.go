package pages

import (
	"embed"

	"github.com/a-h/templ"

	"github.com/ati-intranet/portal/components/layout"
	"github.com/ati-intranet/portal/modules/documents/domain/entities/document"
)

//go:embed *.html
var FS embed.FS

var renderer = layout.MustRenderer(FS, "*.html")

type IndexProps struct {
	Type      string
	Types     []string
	Documents []document.Document
}

func Index(props *IndexProps) templ.Component {
	return renderer.Page("index", "Documents.Title", props)
}
