package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	apperrors "a2t/internal/app/errors"
)

// Config is built once per run and handed to every component.
type Config struct {
	APIKey       string        `yaml:"-" env:"OPENAI_API_KEY"`
	BaseURL      string        `yaml:"base_url" env:"OPENAI_BASE_URL" validate:"omitempty,url"`
	Model        string        `yaml:"model" env:"A2T_MODEL" validate:"required"`
	Language     string        `yaml:"language" env:"A2T_LANGUAGE"`
	Prompt       string        `yaml:"prompt" env:"A2T_PROMPT"`
	MaxChunkMB   float64       `yaml:"max_chunk_mb" env:"A2T_MAX_CHUNK_MB" validate:"gt=0"`
	Strategy     string        `yaml:"strategy" env:"A2T_STRATEGY" validate:"oneof=auto bytes duration"`
	Decoder      string        `yaml:"decoder" env:"A2T_DECODER" validate:"oneof=auto ffmpeg mp3"`
	SafetyMargin float64       `yaml:"safety_margin" env:"A2T_SAFETY_MARGIN" validate:"gt=0,lte=1"`
	Timeout      time.Duration `yaml:"timeout" env:"A2T_TIMEOUT" validate:"gte=0"`
	FFmpegPath   string        `yaml:"ffmpeg" env:"A2T_FFMPEG" validate:"required"`
	FFprobePath  string        `yaml:"ffprobe" env:"A2T_FFPROBE" validate:"required"`
	OutputDir    string        `yaml:"output_dir" env:"A2T_OUTPUT_DIR"`
	MetricsFile  string        `yaml:"metrics_file" env:"A2T_METRICS_FILE"`

	// LanguageAliases maps free-form language names to ISO-639-1 codes.
	LanguageAliases map[string]string `yaml:"language_aliases"`
}

// MaxChunkBytes is the upload threshold in bytes.
func (c *Config) MaxChunkBytes() int64 {
	return int64(c.MaxChunkMB * 1024 * 1024)
}

// Load layers defaults, the optional YAML file and the environment (after
// loading .env). Command line overrides are applied by the caller, which
// then calls Validate.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := cfg.mergeFile(configFile); err != nil {
			return nil, err
		}
	}

	if _, err := LoadEnv(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidConfig, err.Error())
	}
	if err := env.Parse(cfg); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidConfig, "environment variables are invalid: %v", err)
	}

	return cfg, nil
}

// mergeFile overlays the YAML file onto c. Alias entries extend the
// built-in table instead of replacing it.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(os.ExpandEnv(path))
	if err != nil {
		if os.IsNotExist(err) {
			return apperrors.Wrapf(apperrors.ErrInvalidConfig, "config file not found: %s", path)
		}
		return apperrors.Wrapf(apperrors.ErrInvalidConfig, "failed to read config file: %v", err)
	}

	merged := *c
	merged.LanguageAliases = nil
	if err := yaml.Unmarshal(data, &merged); err != nil {
		return apperrors.Wrapf(apperrors.ErrInvalidConfig, "failed to parse YAML %s: %v", path, err)
	}
	merged.LanguageAliases = MergeAliases(c.LanguageAliases, merged.LanguageAliases)

	*c = merged
	return nil
}

// String renders the config with the API key masked.
func (c *Config) String() string {
	return fmt.Sprintf("model=%s language=%s max_chunk_mb=%.1f strategy=%s decoder=%s safety_margin=%.2f timeout=%s api_key=%s",
		c.Model, c.Language, c.MaxChunkMB, c.Strategy, c.Decoder, c.SafetyMargin, c.Timeout, MaskAPIKey(c.APIKey))
}

// MaskAPIKey keeps only the prefix and last four characters of key.
func MaskAPIKey(key string) string {
	if key == "" {
		return "<unset>"
	}
	if len(key) <= 10 {
		return "****"
	}
	return key[:3] + "..." + key[len(key)-4:]
}
