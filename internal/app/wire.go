//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"a2t/internal/app/converter"
	"a2t/internal/app/logging"
	"a2t/internal/config"
)

func InitializeConverter(cfg *config.Config, logger *zap.Logger, runID logging.RunID) (*converter.Converter, error) {
	wire.Build(
		converter.NewConverter,
		provideRemoteTranscriber,
		provideChunkerFactory,
		provideMetrics,
		provideProgressConfig,
	)
	return &converter.Converter{}, nil
}
