package chunker

import (
	"context"

	"go.uber.org/zap"

	"a2t/internal/app/audio"
	apperrors "a2t/internal/app/errors"
	"a2t/internal/app/model"
)

// Strategy names
const (
	StrategyAuto     = "auto"
	StrategyBytes    = "bytes"
	StrategyDuration = "duration"
)

// Chunker turns an input file into units no larger than threshold bytes.
// A file that already fits yields a single unit covering all of it.
type Chunker interface {
	Plan(ctx context.Context, info model.FileInfo, threshold int64) (*Plan, error)
}

// Options configures New.
type Options struct {
	Strategy     string
	Decoder      audio.DecoderOptions
	SafetyMargin float64
	MaxDepth     int
	RunID        string
}

// New picks the chunker for src. "auto" uses duration slicing when a
// decoder is available and degrades to byte slicing otherwise.
func New(opts Options, src string, logger *zap.Logger) (Chunker, error) {
	switch opts.Strategy {
	case StrategyBytes:
		return NewByteSlicer(logger), nil
	case StrategyDuration:
		decoder, err := audio.SelectDecoder(opts.Decoder, src)
		if err != nil {
			return nil, err
		}
		return NewDurationSlicer(decoder, opts.SafetyMargin, opts.MaxDepth, opts.RunID, logger), nil
	case "", StrategyAuto:
		decoder, err := audio.SelectDecoder(opts.Decoder, src)
		if err != nil {
			logger.Warn("no audio decoder available, falling back to byte slicing", zap.Error(err))
			return NewByteSlicer(logger), nil
		}
		return NewDurationSlicer(decoder, opts.SafetyMargin, opts.MaxDepth, opts.RunID, logger), nil
	default:
		return nil, apperrors.Configuration("unknown chunking strategy %q", opts.Strategy).
			WithGuidance("Use --strategy auto, bytes or duration")
	}
}
