package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"a2t/internal/app/chunker"
	apperrors "a2t/internal/app/errors"
	"a2t/internal/config"
)

func TestInitializeConverterRequiresAPIKey(t *testing.T) {
	cfg := config.Default()

	_, err := InitializeConverter(cfg, zap.NewNop(), "run")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrMissingAPIKey))
	assert.Equal(t, apperrors.KindConfiguration, apperrors.KindOf(err))
}

func TestInitializeConverter(t *testing.T) {
	cfg := config.Default()
	cfg.APIKey = "sk-test-0123456789abcdefghij"

	c, err := InitializeConverter(cfg, zap.NewNop(), "run")
	require.NoError(t, err)
	assert.NotNil(t, c.Metrics())
}

func TestProvideChunkerFactory(t *testing.T) {
	cfg := config.Default()
	cfg.Strategy = config.StrategyBytes

	factory := provideChunkerFactory(cfg, zap.NewNop(), "run")
	c, err := factory("/tmp/interview.wav")
	require.NoError(t, err)
	assert.IsType(t, &chunker.ByteSlicer{}, c)
}
