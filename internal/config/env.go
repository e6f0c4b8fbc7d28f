package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// APIKeyPrefix identifies an OpenAI credential on the command line.
const APIKeyPrefix = "sk-"

// envPaths are tried in order; the first one found is loaded.
var envPaths = []string{
	".env",
	".env.local",
}

// LoadEnv loads environment variables from a .env file if one exists.
// Variables already set in the process environment win. It returns the path
// that was loaded, or "" when none was found.
func LoadEnv() (string, error) {
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}

	return "", nil
}

// LooksLikeAPIKey reports whether a positional token is a credential rather
// than a language token.
func LooksLikeAPIKey(token string) bool {
	return strings.HasPrefix(strings.TrimSpace(token), APIKeyPrefix)
}
