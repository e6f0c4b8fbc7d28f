package config

import "time"

// Default configuration constants
const (
	// OpenAI specific
	DefaultModel   = "whisper-1"
	DefaultTimeout = 10 * time.Minute

	// Upload limits. The endpoint rejects payloads above 25 MiB; chunks are
	// cut a little below that.
	UpstreamLimitMB   = 25
	DefaultMaxChunkMB = 24

	// Duration slicing
	DefaultSafetyMargin = 0.9
	MaxResplitDepth     = 4

	DefaultLanguage = "en"
	DefaultStrategy = StrategyAuto
	DefaultDecoder  = DecoderAuto

	DefaultFFmpegPath  = "ffmpeg"
	DefaultFFprobePath = "ffprobe"
)

// Chunking strategies
const (
	StrategyAuto     = "auto"
	StrategyBytes    = "bytes"
	StrategyDuration = "duration"
)

// Decoder implementations
const (
	DecoderAuto   = "auto"
	DecoderFFmpeg = "ffmpeg"
	DecoderMP3    = "mp3"
)

// Default returns a Config populated with built-in defaults only.
func Default() *Config {
	return &Config{
		Model:           DefaultModel,
		Language:        DefaultLanguage,
		MaxChunkMB:      DefaultMaxChunkMB,
		Strategy:        DefaultStrategy,
		Decoder:         DefaultDecoder,
		SafetyMargin:    DefaultSafetyMargin,
		Timeout:         DefaultTimeout,
		FFmpegPath:      DefaultFFmpegPath,
		FFprobePath:     DefaultFFprobePath,
		LanguageAliases: DefaultLanguageAliases(),
	}
}
