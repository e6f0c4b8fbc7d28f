package app

import (
	"go.uber.org/zap"

	"a2t/internal/app/api"
	"a2t/internal/app/api/openai"
	"a2t/internal/app/api/openai/whisper"
	"a2t/internal/app/audio"
	"a2t/internal/app/chunker"
	"a2t/internal/app/converter"
	"a2t/internal/app/logging"
	"a2t/internal/app/metrics"
	"a2t/internal/config"
)

// provideRemoteTranscriber fails without a usable API key, so no request is
// ever sent without credentials.
func provideRemoteTranscriber(cfg *config.Config) (api.Transcriber, error) {
	if err := config.ValidateAPIKey(cfg.APIKey, cfg.BaseURL != ""); err != nil {
		return nil, err
	}
	client := openai.NewClient(cfg.APIKey, cfg.BaseURL, cfg.Timeout)
	return whisper.NewRemoteTranscriber(client, whisper.Options{
		Model:    cfg.Model,
		Language: cfg.Language,
		Prompt:   cfg.Prompt,
	}), nil
}

func provideChunkerFactory(cfg *config.Config, logger *zap.Logger, runID logging.RunID) converter.ChunkerFactory {
	opts := chunker.Options{
		Strategy: cfg.Strategy,
		Decoder: audio.DecoderOptions{
			Name:        cfg.Decoder,
			FFmpegPath:  cfg.FFmpegPath,
			FFprobePath: cfg.FFprobePath,
		},
		SafetyMargin: cfg.SafetyMargin,
		MaxDepth:     config.MaxResplitDepth,
		RunID:        string(runID),
	}
	return func(path string) (chunker.Chunker, error) {
		return chunker.New(opts, path, logger)
	}
}

func provideProgressConfig() converter.ProgressConfig {
	return converter.DefaultProgressConfig()
}

func provideMetrics() *metrics.Recorder {
	return metrics.New()
}
