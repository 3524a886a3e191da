package serrors

import (
	"fmt"

	"github.com/iota-uz/go-i18n/v2/i18n"
)

// BaseError is an error carrying a stable code and a locale key for presentation.
type BaseError struct {
	Code         string
	Message      string
	LocaleKey    string
	TemplateData map[string]string
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
	}
}

func (e *BaseError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches errors by code so wrapped copies with template data still compare equal.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithTemplateData returns a copy of the error bound to the given template data.
func (e *BaseError) WithTemplateData(data map[string]string) *BaseError {
	cp := *e
	cp.TemplateData = data
	return &cp
}

// Localize renders the error message in the localizer's language, falling back to Message.
func (e *BaseError) Localize(l *i18n.Localizer) string {
	if l == nil || e.LocaleKey == "" {
		return e.Message
	}
	cfg := &i18n.LocalizeConfig{MessageID: e.LocaleKey}
	if len(e.TemplateData) > 0 {
		cfg.TemplateData = e.TemplateData
	}
	msg, err := l.Localize(cfg)
	if err != nil || msg == "" {
		return e.Message
	}
	return msg
}
