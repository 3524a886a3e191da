package intl

import (
	"slices"

	"golang.org/x/text/language"
)

type SupportedLanguage struct {
	Code        string
	VerboseName string
	Tag         language.Tag
}

// SupportedLanguages are the locales the portal ships translations for,
// in the order the language picker lists them.
var SupportedLanguages = []SupportedLanguage{
	{Code: "en", VerboseName: "English", Tag: language.English},
	{Code: "zh", VerboseName: "中文", Tag: language.Chinese},
}

// GetSupportedLanguages keeps the languages whose code is in codes, in
// SupportedLanguages order. No codes means every language.
func GetSupportedLanguages(codes []string) []SupportedLanguage {
	if len(codes) == 0 {
		return SupportedLanguages
	}
	out := make([]SupportedLanguage, 0, len(codes))
	for _, lang := range SupportedLanguages {
		if slices.Contains(codes, lang.Code) {
			out = append(out, lang)
		}
	}
	return out
}
