package siteloc

import "strings"

// LocaleNames maps locale codes to human-readable names for logs and sync
// reports.
var LocaleNames = map[string]string{
	"en_US": "English (United States)",
	"en_GB": "English (United Kingdom)",
	"da_DK": "Danish (Denmark)",
	"de_DE": "German (Germany)",
	"es_ES": "Spanish (Spain)",
	"fi_FI": "Finnish (Finland)",
	"fr_FR": "French (France)",
	"it_IT": "Italian (Italy)",
	"ja_JP": "Japanese (Japan)",
	"nb_NO": "Norwegian Bokmål (Norway)",
	"nl_NL": "Dutch (Netherlands)",
	"pl_PL": "Polish (Poland)",
	"pt_BR": "Portuguese (Brazil)",
	"pt_PT": "Portuguese (Portugal)",
	"sv_SE": "Swedish (Sweden)",
	"zh_CN": "Chinese (Simplified)",

	"ar_SA": "Arabic (Saudi Arabia)",
	"he_IL": "Hebrew (Israel)",
	"fa_IR": "Persian (Iran)",
}

// RTLLocales contains base language codes that use right-to-left text
// direction. Localized documents for these get dir="rtl" on the html tag.
var RTLLocales = map[string]bool{
	"ar": true,
	"he": true,
	"fa": true,
	"ur": true,
	"ps": true,
}

// LocaleName returns the human-readable name for a locale code, falling
// back to the code itself.
func LocaleName(code string) string {
	if name, ok := LocaleNames[NormalizeLocale(code)]; ok {
		return name
	}
	return code
}

// NormalizeLocale converts a locale code to the content API's underscore
// format (e.g. "da-DK" → "da_DK").
func NormalizeLocale(code string) string {
	return strings.ReplaceAll(code, "-", "_")
}

// ToHTMLLang converts a locale code to the HTML lang/hreflang attribute
// format (e.g. "da_DK" → "da-DK").
func ToHTMLLang(code string) string {
	return strings.ReplaceAll(code, "_", "-")
}

// BaseLang extracts the base language code (e.g. "da" from "da_DK").
func BaseLang(code string) string {
	base := strings.SplitN(NormalizeLocale(code), "_", 2)[0]
	return strings.ToLower(base)
}

// Direction returns "rtl" for right-to-left locales, "ltr" otherwise.
func Direction(code string) string {
	if RTLLocales[BaseLang(code)] {
		return "rtl"
	}
	return "ltr"
}

// IsRTL reports whether the locale uses right-to-left text direction.
func IsRTL(code string) bool {
	return Direction(code) == "rtl"
}

// SameLocale reports whether two locale codes name the same locale
// regardless of separator or case of the region part.
func SameLocale(a, b string) bool {
	return strings.EqualFold(NormalizeLocale(a), NormalizeLocale(b))
}
