package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

var languageCode = regexp.MustCompile(`^([a-z]{2})(?:[-_][a-z]{2,4})?$`)

// DefaultLanguageAliases returns a fresh copy of the built-in alias table.
func DefaultLanguageAliases() map[string]string {
	return map[string]string{
		"english":    "en",
		"engelsk":    "en",
		"danish":     "da",
		"dansk":      "da",
		"german":     "de",
		"deutsch":    "de",
		"spanish":    "es",
		"espanol":    "es",
		"español":    "es",
		"french":     "fr",
		"francais":   "fr",
		"français":   "fr",
		"swedish":    "sv",
		"svenska":    "sv",
		"norwegian":  "no",
		"norsk":      "no",
		"dutch":      "nl",
		"nederlands": "nl",
		"italian":    "it",
		"italiano":   "it",
		"portuguese": "pt",
		"finnish":    "fi",
		"suomi":      "fi",
		"polish":     "pl",
		"russian":    "ru",
		"chinese":    "zh",
		"mandarin":   "zh",
		"japanese":   "ja",
		"korean":     "ko",
	}
}

// MergeAliases returns base extended with extra; keys are normalised to
// lower case and extra wins on conflict.
func MergeAliases(base, extra map[string]string) map[string]string {
	normalised := lo.MapKeys(extra, func(_ string, key string) string {
		return strings.ToLower(strings.TrimSpace(key))
	})
	return lo.Assign(base, normalised)
}

// LanguageChoice is the outcome of resolving a user supplied language token.
type LanguageChoice struct {
	Code string
	// Warning is set whenever the token could not be used as given.
	Warning string
}

// ResolveLanguage maps a known alias, accepts a well-formed ISO-639-1 code
// (a region suffix such as en-US is dropped), and otherwise falls back to
// fallback with a warning.
func ResolveLanguage(token string, aliases map[string]string, fallback string) LanguageChoice {
	normalised := strings.ToLower(strings.TrimSpace(token))
	if normalised == "" {
		return LanguageChoice{Code: fallback}
	}

	if code, ok := aliases[normalised]; ok {
		return LanguageChoice{Code: code}
	}

	if m := languageCode.FindStringSubmatch(normalised); m != nil {
		choice := LanguageChoice{Code: m[1]}
		if m[1] != normalised {
			choice.Warning = fmt.Sprintf("language %q reduced to %q", token, m[1])
		}
		return choice
	}

	return LanguageChoice{
		Code:    fallback,
		Warning: fmt.Sprintf("unrecognized language %q, falling back to %q", token, fallback),
	}
}
