package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLanguage(t *testing.T) {
	aliases := DefaultLanguageAliases()

	testCases := []struct {
		name        string
		token       string
		wantCode    string
		wantWarning bool
	}{
		{name: "empty uses fallback silently", token: "", wantCode: "en"},
		{name: "iso code", token: "da", wantCode: "da"},
		{name: "upper case code", token: "DE", wantCode: "de"},
		{name: "alias", token: "Danish", wantCode: "da"},
		{name: "native alias", token: "dansk", wantCode: "da"},
		{name: "region code reduced", token: "en-US", wantCode: "en", wantWarning: true},
		{name: "underscore region reduced", token: "pt_BR", wantCode: "pt", wantWarning: true},
		{name: "unknown word", token: "elvish", wantCode: "en", wantWarning: true},
		{name: "three letter code", token: "dan", wantCode: "en", wantWarning: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveLanguage(tc.token, aliases, "en")
			assert.Equal(t, tc.wantCode, got.Code)
			assert.Equal(t, tc.wantWarning, got.Warning != "")
		})
	}
}

func TestMergeAliases(t *testing.T) {
	base := map[string]string{"english": "en"}
	merged := MergeAliases(base, map[string]string{" Klingon ": "tlh", "english": "en"})

	assert.Equal(t, "tlh", merged["klingon"])
	assert.Equal(t, "en", merged["english"])
	assert.Len(t, base, 1, "base is not mutated")
}
