package pages

import (
	"embed"

	"github.com/a-h/templ"

	"github.com/ati-intranet/portal/components/layout"
	"github.com/ati-intranet/portal/modules/core/domain/entities/announcement"
)

//go:embed *.html
var FS embed.FS

var renderer = layout.MustRenderer(FS, "*.html")

type LoginProps struct {
	Username string
	Next     string
	Error    string
	Errors   map[string]string
}

type SignupProps struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Error     string
	Errors    map[string]string
}

type QuickCard struct {
	Icon        string
	TitleKey    string
	SubtitleKey string
	Href        string
}

type HomeProps struct {
	Username      string
	Cards         []QuickCard
	Announcements []announcement.Announcement
}

func Login(props *LoginProps) templ.Component {
	return renderer.Public("login", "Login.Title", props)
}

func Signup(props *SignupProps) templ.Component {
	return renderer.Public("signup", "Signup.Title", props)
}

func Home(props *HomeProps) templ.Component {
	return renderer.Page("home", "Home.Title", props)
}

// SpotlightEmpty is rendered in the result list when nothing matches.
func SpotlightEmpty() templ.Component {
	return renderer.Partial("spotlight", "empty", nil)
}
