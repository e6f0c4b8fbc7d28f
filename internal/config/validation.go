package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "a2t/internal/app/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags and the cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			return apperrors.Wrap(apperrors.ErrInvalidConfig, describe(validationErrs))
		}
		return apperrors.Wrap(apperrors.ErrInvalidConfig, err.Error())
	}

	if c.MaxChunkMB > UpstreamLimitMB {
		return apperrors.Wrap(apperrors.ErrInvalidConfig,
			fmt.Sprintf("maxchunkmb must be at most %d, the upload limit of the endpoint", UpstreamLimitMB))
	}
	if err := ValidateTimeout(c.Timeout, "request"); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidConfig, err.Error())
	}
	if c.Decoder == DecoderMP3 && c.Strategy == StrategyBytes {
		return apperrors.Wrap(apperrors.ErrInvalidConfig, "decoder mp3 has no effect with strategy bytes")
	}
	return nil
}

func describe(validationErrs validator.ValidationErrors) string {
	messages := make([]string, 0, len(validationErrs))
	for _, fieldError := range validationErrs {
		field := strings.ToLower(fieldError.Field())

		switch fieldError.Tag() {
		case "required":
			messages = append(messages, field+" is required")
		case "gt", "gte":
			messages = append(messages, fmt.Sprintf("%s must be greater than %s", field, fieldError.Param()))
		case "lte":
			messages = append(messages, fmt.Sprintf("%s must be at most %s", field, fieldError.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of [%s]", field, fieldError.Param()))
		case "url":
			messages = append(messages, field+" must be a valid URL")
		default:
			messages = append(messages, field+" is invalid")
		}
	}
	sort.Strings(messages)
	return strings.Join(messages, "; ")
}

// ValidateTimeout validates timeout duration. Zero disables the timeout.
func ValidateTimeout(timeout time.Duration, name string) error {
	if timeout < 0 {
		return fmt.Errorf("%s timeout cannot be negative", name)
	}
	if timeout > time.Hour {
		return fmt.Errorf("%s timeout too large (max 1 hour)", name)
	}
	return nil
}

// ValidateAPIKey validates the OpenAI API key format. Keys for
// OpenAI-compatible servers behind a custom base URL are not checked.
func ValidateAPIKey(apiKey string, customBaseURL bool) error {
	if apiKey == "" {
		return apperrors.ErrMissingAPIKey
	}
	if customBaseURL {
		return nil
	}
	if !strings.HasPrefix(apiKey, APIKeyPrefix) {
		return apperrors.Configuration("invalid OpenAI API key format: must start with '%s'", APIKeyPrefix)
	}
	if len(apiKey) < 20 {
		return apperrors.Configuration("invalid OpenAI API key format: too short")
	}
	return nil
}
