package cmd

import (
	"io"

	"a2t/internal/app/converter"
	"a2t/internal/config"
)

// ParsePositional exposes parsePositional for testing.
func ParsePositional(tokens []string) (apiKey, language string, err error) {
	p, err := parsePositional(tokens)
	return p.apiKey, p.language, err
}

// ApplyFlags parses argv as command line flags and applies them to cfg
// together with the positional values. It returns the language token.
func ApplyFlags(argv []string, apiKey, language string, cfg *config.Config) (string, error) {
	opts := &options{}
	c := newRootCmd(opts)
	if err := c.ParseFlags(argv); err != nil {
		return "", err
	}
	return applyOverrides(c.Flags(), opts, positionalArgs{apiKey: apiKey, language: language}, cfg), nil
}

// PrintError exposes printError for testing.
func PrintError(w io.Writer, err error) {
	printError(w, err)
}

// PrintResult exposes printResult for testing.
func PrintResult(w io.Writer, result *converter.Result, quiet bool) {
	printResult(w, result, quiet)
}
