package types

import (
	"net/url"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/ati-intranet/portal/pkg/authz"
)

// PageContextProvider gives templates localization and request metadata.
type PageContextProvider interface {
	// T translates a message ID and panics when it is missing.
	T(key string, args ...map[string]interface{}) string
	// TSafe is like T but returns an empty string on error instead of panicking.
	TSafe(key string, args ...map[string]interface{}) string
	// Namespace returns a provider that prefixes every message ID with prefix.
	Namespace(prefix string) PageContextProvider
	GetLocale() language.Tag
	GetURL() *url.URL
	GetLocalizer() *i18n.Localizer
	AuthzState() *authz.ViewState
	CanAuthz(object, action string) bool
}

type PageContext struct {
	Locale     language.Tag
	URL        *url.URL
	Localizer  *i18n.Localizer
	prefix     string
	authzState *authz.ViewState
}

var _ PageContextProvider = (*PageContext)(nil)

func NewPageContext(locale language.Tag, u *url.URL, localizer *i18n.Localizer, state *authz.ViewState) *PageContext {
	return &PageContext{
		Locale:     locale,
		URL:        u,
		Localizer:  localizer,
		authzState: state,
	}
}

func (p *PageContext) messageID(k string) string {
	if p.prefix != "" {
		return p.prefix + "." + k
	}
	return k
}

func (p *PageContext) T(k string, args ...map[string]interface{}) string {
	if len(args) > 1 {
		panic("T(): too many arguments")
	}
	cfg := &i18n.LocalizeConfig{MessageID: p.messageID(k)}
	if len(args) == 1 {
		cfg.TemplateData = args[0]
	}
	return p.Localizer.MustLocalize(cfg)
}

func (p *PageContext) TSafe(k string, args ...map[string]interface{}) string {
	if len(args) > 1 {
		panic("T(): too many arguments")
	}
	cfg := &i18n.LocalizeConfig{MessageID: p.messageID(k)}
	if len(args) == 1 {
		cfg.TemplateData = args[0]
	}
	result, err := p.Localizer.Localize(cfg)
	if err != nil {
		return ""
	}
	return result
}

func (p *PageContext) Namespace(prefix string) PageContextProvider {
	return &PageContext{
		Locale:     p.Locale,
		URL:        p.URL,
		Localizer:  p.Localizer,
		prefix:     prefix,
		authzState: p.authzState,
	}
}

func (p *PageContext) GetLocale() language.Tag {
	return p.Locale
}

func (p *PageContext) GetURL() *url.URL {
	return p.URL
}

func (p *PageContext) GetLocalizer() *i18n.Localizer {
	return p.Localizer
}

func (p *PageContext) AuthzState() *authz.ViewState {
	return p.authzState
}

// CanAuthz reports a capability previously resolved for this request.
func (p *PageContext) CanAuthz(object, action string) bool {
	if p.authzState == nil {
		return false
	}
	return p.authzState.Capability(authz.CapabilityKey(object, action))
}
