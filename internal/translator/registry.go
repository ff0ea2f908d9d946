package translator

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// supportedLanguages is the set of language codes accepted by the
// provider. Codes are stored uppercase; membership checks normalize.
var supportedLanguages = map[string]struct{}{
	"BG": {}, "CS": {}, "DA": {}, "DE": {}, "EL": {}, "EN": {},
	"EN-GB": {}, "EN-US": {}, "ES": {}, "ET": {}, "FI": {}, "FR": {},
	"HU": {}, "ID": {}, "IT": {}, "JA": {}, "KO": {}, "LT": {},
	"LV": {}, "NB": {}, "NL": {}, "PL": {}, "PT": {}, "PT-BR": {},
	"PT-PT": {}, "RO": {}, "RU": {}, "SK": {}, "SL": {}, "SV": {},
	"TR": {}, "UK": {}, "ZH": {},
}

// IsSupported reports whether code names a supported language,
// regardless of case.
func IsSupported(code string) bool {
	if code == "" {
		return false
	}
	_, ok := supportedLanguages[strings.ToUpper(code)]
	return ok
}

// Languages returns the supported codes, sorted.
func Languages() []string {
	codes := make([]string, 0, len(supportedLanguages))
	for code := range supportedLanguages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// DisplayName returns a human-readable English name for a language
// code, falling back to the code itself when it cannot be parsed.
func DisplayName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return code
}
