package assets

import (
	"embed"

	"github.com/benbjohnson/hashfs"
)

//go:embed css/*.css js/*.js
var FS embed.FS

var HashFS = hashfs.NewFS(FS)

// Path returns the hash-named URL of an embedded asset, e.g. "css/main.css".
func Path(name string) string {
	return "/assets/" + HashFS.HashName(name)
}
