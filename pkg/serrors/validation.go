package serrors

import (
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/ati-intranet/portal/pkg/constants"
)

type ValidationErrors map[string]*BaseError

var fallbackTranslator = sync.OnceValue(func() ut.Translator {
	locale := en.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("en")
	if err := entranslations.RegisterDefaultTranslations(constants.Validate, trans); err != nil {
		panic(err)
	}
	return trans
})

// ProcessValidatorErrors converts validator output into BaseErrors keyed by struct field.
// getFieldLocaleKey maps a field name to the locale key of its label.
func ProcessValidatorErrors(errs validator.ValidationErrors, getFieldLocaleKey func(string) string) ValidationErrors {
	trans := fallbackTranslator()
	out := make(ValidationErrors, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		out[field] = &BaseError{
			Code:      "VALIDATION_" + fe.Tag(),
			Message:   fe.Translate(trans),
			LocaleKey: "ValidationErrors." + fe.Tag(),
			TemplateData: map[string]string{
				"Field":    getFieldLocaleKey(field),
				"Param":    fe.Param(),
				"RawField": field,
			},
		}
	}
	return out
}

// LocalizeValidationErrors renders every error with the field label translated first.
func LocalizeValidationErrors(errs ValidationErrors, l *i18n.Localizer) map[string]string {
	out := make(map[string]string, len(errs))
	for field, err := range errs {
		data := make(map[string]string, len(err.TemplateData))
		for k, v := range err.TemplateData {
			data[k] = v
		}
		label := data["RawField"]
		if key := data["Field"]; key != "" && l != nil {
			if translated, lerr := l.Localize(&i18n.LocalizeConfig{MessageID: key}); lerr == nil {
				label = translated
			}
		}
		data["Field"] = label
		out[field] = err.WithTemplateData(data).Localize(l)
	}
	return out
}
